package chess

// Moves returns the legal move map for the position described by cfg,
// without retaining any state.
func Moves(cfg Config) (map[string][]string, error) {
	g, err := New(&cfg)
	if err != nil {
		return nil, err
	}
	return g.Moves("")
}

// Status returns the structured snapshot of the position described by cfg.
func Status(cfg Config) (Configuration, error) {
	g, err := New(&cfg)
	if err != nil {
		return Configuration{}, err
	}
	return g.ExportJSON(), nil
}

// Move applies one move to the position described by cfg and returns
// the resulting configuration, without retaining any state.
func Move(cfg Config, from, to, promotion string) (Configuration, error) {
	g, err := New(&cfg)
	if err != nil {
		return Configuration{}, err
	}
	if err := g.Move(from, to, promotion); err != nil {
		return Configuration{}, err
	}
	return g.ExportJSON(), nil
}

// AI runs the search engine against the position described by cfg and
// returns its result, without retaining any state.
func AI(cfg Config, opts AIOptions) (*AIResult, error) {
	g, err := New(&cfg)
	if err != nil {
		return nil, err
	}
	return g.AI(opts)
}

// AIMove is the stateless single-move convenience form.
func AIMove(cfg Config, level int) (*MoveResult, error) {
	g, err := New(&cfg)
	if err != nil {
		return nil, err
	}
	return g.AIMove(level)
}
