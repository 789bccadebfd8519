// filters.go - Game filter construction from command-line flags
package main

import (
	"github.com/lgbarn/chesscore-go/internal/matching"
)

// buildFilter assembles the game filter selected by the command-line flags.
// The result has no criteria when no filter flag is set.
func buildFilter() (*matching.GameFilter, error) {
	gf := matching.NewGameFilter()
	gf.Variations = matching.NewVariationMatcher(*varAnywhere)

	switch {
	case *materialMatchExact != "":
		if err := gf.SetMaterial(*materialMatchExact, true); err != nil {
			return nil, err
		}
	case *materialMatch != "":
		if err := gf.SetMaterial(*materialMatch, false); err != nil {
			return nil, err
		}
	}

	if *variationFile != "" {
		if err := gf.Variations.LoadFromFile(*variationFile); err != nil {
			return nil, err
		}
	}
	if *positionalFile != "" {
		if err := gf.Variations.LoadPositionalFromFile(*positionalFile); err != nil {
			return nil, err
		}
	}

	if *fenFilter != "" {
		if err := gf.AddPosition(*fenFilter, ""); err != nil {
			return nil, err
		}
	}
	if *positionFile != "" {
		if err := gf.LoadPositionFile(*positionFile); err != nil {
			return nil, err
		}
	}

	if err := gf.SetPlyRange(*minPly, *maxPly); err != nil {
		return nil, err
	}
	return gf, nil
}
