package roll

// ActionRollInput defines the request for an action roll
type ActionRollInput struct {
	// Directive is "((rollplus <stat>))" or a bare stat name
	Directive string
	StatValue int
	Adds      int
}

// ActionRollOutput defines the response for an action roll
type ActionRollOutput struct {
	Roll *ActionRoll
}

// ActionRoll is a resolved action roll
type ActionRoll struct {
	Stat          string
	ActionDie     int
	StatValue     int
	Adds          int
	ActionScore   int
	ChallengeDice [2]int
	Outcome       Outcome
	Match         bool
}
