package engine

const (
	minStat = 0.0
	maxStat = 99.0
)

func clampStat(v float64) float64 {
	if v < minStat {
		return minStat
	}
	if v > maxStat {
		return maxStat
	}
	return v
}

// PlayerID is stable for the life of a roster.
type PlayerID string

type Skating struct {
	Acceleration float64 `json:"acceleration" validate:"gte=0,lte=99"`
	Agility      float64 `json:"agility" validate:"gte=0,lte=99"`
	Balance      float64 `json:"balance" validate:"gte=0,lte=99"`
	Speed        float64 `json:"speed" validate:"gte=0,lte=99"`
	Endurance    float64 `json:"endurance" validate:"gte=0,lte=99"`
}

func (s Skating) average() float64 {
	return (s.Acceleration + s.Agility + s.Balance + s.Speed + s.Endurance) / 5
}

type Shooting struct {
	SlapShotAccuracy  float64 `json:"slap_shot_accuracy" validate:"gte=0,lte=99"`
	SlapShotPower     float64 `json:"slap_shot_power" validate:"gte=0,lte=99"`
	WristShotAccuracy float64 `json:"wrist_shot_accuracy" validate:"gte=0,lte=99"`
	WristShotPower    float64 `json:"wrist_shot_power" validate:"gte=0,lte=99"`
}

func (s Shooting) average() float64 {
	return (s.SlapShotAccuracy + s.SlapShotPower + s.WristShotAccuracy + s.WristShotPower) / 4
}

type StickHandling struct {
	PuckControl   float64 `json:"puck_control" validate:"gte=0,lte=99"`
	StickHandling float64 `json:"stick_handling" validate:"gte=0,lte=99"`
	Passing       float64 `json:"passing" validate:"gte=0,lte=99"`
}

func (s StickHandling) average() float64 {
	return (s.PuckControl + s.StickHandling + s.Passing) / 3
}

// Strength holds the physical group. Strength.Strength is the current value: it is drained at
// the end of every shift and raised by coach commands.
type Strength struct {
	Strength       float64 `json:"strength" validate:"gte=0,lte=99"`
	BodyChecking   float64 `json:"body_checking" validate:"gte=0,lte=99"`
	Aggressiveness float64 `json:"aggressiveness" validate:"gte=0,lte=99"`
	FightingSkill  float64 `json:"fighting_skill" validate:"gte=0,lte=99"`
}

type IQ struct {
	Offensive  float64 `json:"offensive" validate:"gte=0,lte=99"`
	Defensive  float64 `json:"defensive" validate:"gte=0,lte=99"`
	Discipline float64 `json:"discipline" validate:"gte=0,lte=99"`
	Passing    float64 `json:"passing" validate:"gte=0,lte=99"`
}

func (s IQ) average() float64 {
	return (s.Offensive + s.Defensive + s.Discipline + s.Passing) / 4
}

type Defense struct {
	DefensiveAwareness float64 `json:"defensive_awareness" validate:"gte=0,lte=99"`
	FaceOffs           float64 `json:"face_offs" validate:"gte=0,lte=99"`
	ShotBlocking       float64 `json:"shot_blocking" validate:"gte=0,lte=99"`
	StickChecking      float64 `json:"stick_checking" validate:"gte=0,lte=99"`
}

type FieldStats struct {
	Skating       Skating       `json:"skating"`
	Shooting      Shooting      `json:"shooting"`
	StickHandling StickHandling `json:"stick_handling"`
	Strength      Strength      `json:"strength"`
	IQ            IQ            `json:"iq"`
	Defense       Defense       `json:"defense"`
}

// FieldPlayer is a skater. The same shape is used for roster input and for game state.
type FieldPlayer struct {
	ID          PlayerID   `json:"id" validate:"required"`
	Name        string     `json:"name"`
	Position    Position   `json:"position" validate:"oneof=C LW RW LD RD"`
	Role        Role       `json:"role" validate:"oneof=playmaker shooter enforcer tough_guy try_harder two_way defensive_forward offensive_defenseman defensive_defenseman"`
	Nationality string     `json:"nationality" validate:"required"`
	Hand        Hand       `json:"hand" validate:"oneof=left right"`
	Stats       FieldStats `json:"stats"`
	Morale      float64    `json:"morale" validate:"gte=0,lte=99"`

	// PenaltyTurns is the remaining penalty countdown; zero outside an active penalty.
	PenaltyTurns int `json:"penalty_turns,omitempty" validate:"eq=0"`
	penaltyTurn  int
}

func (p *FieldPlayer) penalized() bool { return p.PenaltyTurns > 0 }

// openIce is the blend used by loose-puck battles.
func (p *FieldPlayer) openIce() float64 {
	return (p.Stats.StickHandling.PuckControl + p.Stats.Strength.Aggressiveness + p.Stats.Strength.Strength) / 3
}

func (p *FieldPlayer) addMorale(d float64)   { p.Morale = clampStat(p.Morale + d) }
func (p *FieldPlayer) addStrength(d float64) { p.Stats.Strength.Strength = clampStat(p.Stats.Strength.Strength + d) }

func (p *FieldPlayer) addIQ(d float64) {
	iq := &p.Stats.IQ
	iq.Offensive = clampStat(iq.Offensive + d)
	iq.Defensive = clampStat(iq.Defensive + d)
	iq.Discipline = clampStat(iq.Discipline + d)
	iq.Passing = clampStat(iq.Passing + d)
}

type Reflexes struct {
	Glove float64 `json:"glove" validate:"gte=0,lte=99"`
	Pads  float64 `json:"pads" validate:"gte=0,lte=99"`
}

type Positioning struct {
	Stand   float64 `json:"stand" validate:"gte=0,lte=99"`
	Stretch float64 `json:"stretch" validate:"gte=0,lte=99"`
}

type Goalie struct {
	ID          PlayerID    `json:"id" validate:"required"`
	Name        string      `json:"name"`
	Role        GoalieRole  `json:"role" validate:"oneof=standup butterfly hybrid"`
	Reflexes    Reflexes    `json:"reflexes"`
	Positioning Positioning `json:"positioning"`
	PuckControl float64     `json:"puck_control" validate:"gte=0,lte=99"`
	Strength    float64     `json:"strength" validate:"gte=0,lte=99"`
	Morale      float64     `json:"morale" validate:"gte=0,lte=99"`
}

func (g *Goalie) addMorale(d float64)   { g.Morale = clampStat(g.Morale + d) }
func (g *Goalie) addStrength(d float64) { g.Strength = clampStat(g.Strength + d) }

// saveRating is the goalie side of a shot contest. After a pass the goalie has to move across,
// so positioning counts; otherwise reflexes do.
func (g *Goalie) saveRating(afterPass bool) float64 {
	reflexWeight, positionWeight := 1.0, 0.7
	if g.Role == Standup {
		reflexWeight, positionWeight = 0.7, 1.0
	}
	var base float64
	if afterPass {
		base = (g.Positioning.Stand + g.Positioning.Stretch) / 2 * positionWeight
	} else {
		base = (g.Reflexes.Glove + g.Reflexes.Pads) / 2 * reflexWeight
	}
	return (base + g.Morale) / 2
}
