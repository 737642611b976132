package engine

import "fmt"

var (
	sampleNations = []string{"CA", "US", "SE", "FI", "CZ"}
	sampleRoles   = map[Position][4]Role{
		Center:       {Playmaker, TwoWay, DefensiveForward, TryHarder},
		LeftWing:     {Shooter, Playmaker, ToughGuy, Enforcer},
		RightWing:    {Shooter, TryHarder, TwoWay, ToughGuy},
		LeftDefense:  {OffensiveDefenseman, DefensiveDefenseman, OffensiveDefenseman, DefensiveDefenseman},
		RightDefense: {DefensiveDefenseman, OffensiveDefenseman, DefensiveDefenseman, OffensiveDefenseman},
	}
)

// SampleTeam builds a complete, valid roster with stats derived from variant. Different variants
// give different but reproducible teams; it backs the CLI and the tests.
func SampleTeam(name string, variant uint64) TeamDescriptor {
	src := NewSeedOracle(variant)
	draw := 0
	stat := func() float64 {
		draw++
		v, _ := src.Rand(45, 90, uint64(draw))
		return float64(v)
	}

	d := TeamDescriptor{Name: name}
	ids := make(map[Position][4]PlayerID, len(skaterPositions))
	for _, pos := range skaterPositions {
		var row [4]PlayerID
		for i := 0; i < 4; i++ {
			id := PlayerID(fmt.Sprintf("%s-%s%d", name, pos, i+1))
			row[i] = id
			hand := LeftHand
			if pos == RightWing || pos == RightDefense {
				hand = RightHand
			}
			d.Players = append(d.Players, FieldPlayer{
				ID:          id,
				Name:        fmt.Sprintf("%s %s%d", name, pos, i+1),
				Position:    pos,
				Role:        sampleRoles[pos][i],
				Nationality: sampleNations[(len(d.Players)+i)%len(sampleNations)],
				Hand:        hand,
				Morale:      stat(),
				Stats: FieldStats{
					Skating:       Skating{Acceleration: stat(), Agility: stat(), Balance: stat(), Speed: stat(), Endurance: stat()},
					Shooting:      Shooting{SlapShotAccuracy: stat(), SlapShotPower: stat(), WristShotAccuracy: stat(), WristShotPower: stat()},
					StickHandling: StickHandling{PuckControl: stat(), StickHandling: stat(), Passing: stat()},
					Strength:      Strength{Strength: stat(), BodyChecking: stat(), Aggressiveness: stat(), FightingSkill: stat()},
					IQ:            IQ{Offensive: stat(), Defensive: stat(), Discipline: stat(), Passing: stat()},
					Defense:       Defense{DefensiveAwareness: stat(), FaceOffs: stat(), ShotBlocking: stat(), StickChecking: stat()},
				},
			})
		}
		ids[pos] = row
	}

	goalie := func(suffix string, role GoalieRole) Goalie {
		return Goalie{
			ID:          PlayerID(fmt.Sprintf("%s-G%s", name, suffix)),
			Name:        fmt.Sprintf("%s G%s", name, suffix),
			Role:        role,
			Reflexes:    Reflexes{Glove: stat(), Pads: stat()},
			Positioning: Positioning{Stand: stat(), Stretch: stat()},
			PuckControl: stat(),
			Strength:    stat(),
			Morale:      stat(),
		}
	}
	d.Goalies = Goalies{Main: goalie("1", Butterfly), Substitute: goalie("2", Standup)}

	five := func(i int) map[Position]PlayerID {
		return map[Position]PlayerID{
			Center: ids[Center][i], LeftWing: ids[LeftWing][i], RightWing: ids[RightWing][i],
			LeftDefense: ids[LeftDefense][i], RightDefense: ids[RightDefense][i],
		}
	}
	kill := func(i int) map[Position]PlayerID {
		return map[Position]PlayerID{
			Center: ids[Center][i], LeftWing: ids[LeftWing][i],
			LeftDefense: ids[LeftDefense][i], RightDefense: ids[RightDefense][i],
		}
	}
	line := func(n LineNumber, slots map[Position]PlayerID, p IcePriority, t Tactic) LineDescriptor {
		return LineDescriptor{Number: n, Slots: slots, Priority: p, Tactic: t}
	}
	d.Lines = []LineDescriptor{
		line(FirstLine, five(0), High, Offensive),
		line(SecondLine, five(1), Normal, Neutral),
		line(ThirdLine, five(2), Normal, Defensive),
		line(FourthLine, five(3), Low, Safe),
		line(PowerPlay1, five(0), Normal, Aggressive),
		line(PowerPlay2, five(1), Low, Offensive),
		line(PenaltyKill1, kill(2), Normal, Defensive),
		line(PenaltyKill2, kill(3), Low, Safe),
	}
	return d
}
