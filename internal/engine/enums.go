package engine

// Side identifies one of the two users of a match. User 1 attacks zone 3, user 2 attacks zone 1.
type Side int

const (
	User1 Side = 1
	User2 Side = 2
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == User1 {
		return User2
	}
	return User1
}

func (s Side) valid() bool { return s == User1 || s == User2 }

// attackZone is the zone where this side may shoot.
func (s Side) attackZone() int {
	if s == User1 {
		return 3
	}
	return 1
}

// defensiveZone is this side's own end.
func (s Side) defensiveZone() int {
	if s == User1 {
		return 1
	}
	return 3
}

// Position is a slot on the ice.
type Position string

const (
	Center       Position = "C"
	LeftWing     Position = "LW"
	RightWing    Position = "RW"
	LeftDefense  Position = "LD"
	RightDefense Position = "RD"
	Goaltender   Position = "G"
)

// skaterPositions is the canonical iteration order; every loop over a line goes through it so
// that draws happen in the same order on every run.
var skaterPositions = []Position{Center, LeftWing, RightWing, LeftDefense, RightDefense}

func (p Position) IsSkater() bool {
	switch p {
	case Center, LeftWing, RightWing, LeftDefense, RightDefense:
		return true
	}
	return false
}

func (p Position) IsWing() bool    { return p == LeftWing || p == RightWing }
func (p Position) IsDefense() bool { return p == LeftDefense || p == RightDefense }

// mirror is the other edge of the same row. Center has none.
func (p Position) mirror() Position {
	switch p {
	case LeftWing:
		return RightWing
	case RightWing:
		return LeftWing
	case LeftDefense:
		return RightDefense
	case RightDefense:
		return LeftDefense
	}
	return p
}

// Role drives action preferences and teamwork modifiers.
type Role string

const (
	Playmaker           Role = "playmaker"
	Shooter             Role = "shooter"
	Enforcer            Role = "enforcer"
	ToughGuy            Role = "tough_guy"
	TryHarder           Role = "try_harder"
	TwoWay              Role = "two_way"
	DefensiveForward    Role = "defensive_forward"
	OffensiveDefenseman Role = "offensive_defenseman"
	DefensiveDefenseman Role = "defensive_defenseman"
)

// GoalieRole is the goaltending style. Standup goalies play post to post and rely on positioning
// more than reflexes.
type GoalieRole string

const (
	Standup   GoalieRole = "standup"
	Butterfly GoalieRole = "butterfly"
	Hybrid    GoalieRole = "hybrid"
)

type Hand string

const (
	LeftHand  Hand = "left"
	RightHand Hand = "right"
)

// GoalieSlot selects which goalie is in net.
type GoalieSlot string

const (
	MainGoalie       GoalieSlot = "main"
	SubstituteGoalie GoalieSlot = "substitute"
)

// LineNumber addresses a five.
type LineNumber string

const (
	FirstLine    LineNumber = "first"
	SecondLine   LineNumber = "second"
	ThirdLine    LineNumber = "third"
	FourthLine   LineNumber = "fourth"
	PowerPlay1   LineNumber = "power_play_1"
	PowerPlay2   LineNumber = "power_play_2"
	PenaltyKill1 LineNumber = "penalty_kill_1"
	PenaltyKill2 LineNumber = "penalty_kill_2"
)

var lineNumbers = []LineNumber{FirstLine, SecondLine, ThirdLine, FourthLine, PowerPlay1, PowerPlay2, PenaltyKill1, PenaltyKill2}

func (n LineNumber) valid() bool {
	for _, ln := range lineNumbers {
		if ln == n {
			return true
		}
	}
	return false
}

func (n LineNumber) IsPowerPlay() bool   { return n == PowerPlay1 || n == PowerPlay2 }
func (n LineNumber) IsPenaltyKill() bool { return n == PenaltyKill1 || n == PenaltyKill2 }

// IsBrigade reports whether the line is a special-teams unit.
func (n LineNumber) IsBrigade() bool { return n.IsPowerPlay() || n.IsPenaltyKill() }

// IsRegular reports whether the line plays even strength.
func (n LineNumber) IsRegular() bool { return n.valid() && !n.IsBrigade() }

// next is the rotation order used on shift changes.
func (n LineNumber) next() LineNumber {
	switch n {
	case FirstLine:
		return SecondLine
	case SecondLine:
		return ThirdLine
	case ThirdLine:
		return FourthLine
	case FourthLine:
		return FirstLine
	case PowerPlay1:
		return PowerPlay2
	case PowerPlay2:
		return PowerPlay1
	case PenaltyKill1:
		return PenaltyKill2
	case PenaltyKill2:
		return PenaltyKill1
	}
	return FirstLine
}

// IcePriority sets how long a line stays on the ice and how much it costs.
type IcePriority string

const (
	SuperLow  IcePriority = "super_low"
	Low       IcePriority = "low"
	Normal    IcePriority = "normal"
	High      IcePriority = "high"
	SuperHigh IcePriority = "super_high"
)

func (p IcePriority) valid() bool {
	switch p {
	case SuperLow, Low, Normal, High, SuperHigh:
		return true
	}
	return false
}

// shiftLength is the number of turns before the line rotates.
func (p IcePriority) shiftLength() int {
	switch p {
	case SuperLow:
		return 3
	case Low:
		return 5
	case High:
		return 10
	case SuperHigh:
		return 12
	}
	return 7
}

// strengthCost is drained from every skater of the line at the end of its shift.
func (p IcePriority) strengthCost() float64 {
	switch p {
	case SuperLow:
		return 1
	case Low:
		return 2
	case High:
		return 4
	case SuperHigh:
		return 5
	}
	return 3
}

type Tactic string

const (
	Safe       Tactic = "safe"
	Defensive  Tactic = "defensive"
	Neutral    Tactic = "neutral"
	Offensive  Tactic = "offensive"
	Aggressive Tactic = "aggressive"
)

func (t Tactic) valid() bool {
	switch t {
	case Safe, Defensive, Neutral, Offensive, Aggressive:
		return true
	}
	return false
}

// ActionType is a tag in the event log. The set is closed.
type ActionType string

const (
	StartGame                    ActionType = "StartGame"
	EndOfPeriod                  ActionType = "EndOfPeriod"
	Overtime                     ActionType = "Overtime"
	GameFinished                 ActionType = "GameFinished"
	FaceOff                      ActionType = "FaceOff"
	FaceOffWin                   ActionType = "FaceOffWin"
	Pass                         ActionType = "Pass"
	PassCaught                   ActionType = "PassCaught"
	Shot                         ActionType = "Shot"
	ShotBlocked                  ActionType = "ShotBlocked"
	ShotMissed                   ActionType = "ShotMissed"
	Goal                         ActionType = "Goal"
	Save                         ActionType = "Save"
	Rebound                      ActionType = "Rebound"
	Move                         ActionType = "Move"
	Hit                          ActionType = "Hit"
	Offside                      ActionType = "Offside"
	Dangle                       ActionType = "Dangle"
	PokeCheck                    ActionType = "PokeCheck"
	DumpIn                       ActionType = "DumpIn"
	DumpOut                      ActionType = "DumpOut"
	Icing                        ActionType = "Icing"
	Giveaway                     ActionType = "Giveaway"
	Takeaway                     ActionType = "Takeaway"
	PuckOut                      ActionType = "PuckOut"
	BigPenalty                   ActionType = "BigPenalty"
	SmallPenalty                 ActionType = "SmallPenalty"
	NetOff                       ActionType = "NetOff"
	Fight                        ActionType = "Fight"
	Battle                       ActionType = "Battle"
	PuckLose                     ActionType = "PuckLose"
	TakeTO                       ActionType = "TakeTO"
	CoachSpeech                  ActionType = "CoachSpeech"
	GoalieOut                    ActionType = "GoalieOut"
	GoalieBack                   ActionType = "GoalieBack"
	PenaltyShot                  ActionType = "PenaltyShot"
	FirstTeamChangeActiveFive    ActionType = "FirstTeamChangeActiveFive"
	SecondTeamChangeActiveFive   ActionType = "SecondTeamChangeActiveFive"
	EndedPenaltyForTheFirstTeam  ActionType = "EndedPenaltyForTheFirstTeam"
	EndedPenaltyForTheSecondTeam ActionType = "EndedPenaltyForTheSecondTeam"
)

func changeFiveTag(s Side) ActionType {
	if s == User1 {
		return FirstTeamChangeActiveFive
	}
	return SecondTeamChangeActiveFive
}

func endedPenaltyTag(s Side) ActionType {
	if s == User1 {
		return EndedPenaltyForTheFirstTeam
	}
	return EndedPenaltyForTheSecondTeam
}
