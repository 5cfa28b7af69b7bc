// Command brwtbench builds a binary relation from a fixture of (object,
// label) pairs and runs a single range query against it, reporting the
// result and how long the query took.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/succinctgo/brwt"
)

func main() {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "brwtbench",
		Short: "Build a binary relation from a fixture and time a query against it",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
				Level(level).With().Timestamp().Logger()
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	var fixture string
	var synthObjects, synthLabels, synthPairs int
	var synthSeed uint64

	rankCmd := &cobra.Command{
		Use:   "rank",
		Short: "Count pairs with object <= max-object and label <= max-label",
		RunE: func(cmd *cobra.Command, args []string) error {
			maxObject, _ := cmd.Flags().GetInt("max-object")
			maxLabel, _ := cmd.Flags().GetInt("max-label")

			pairs, err := loadOrSynthesize(fixture, synthObjects, synthLabels, synthPairs, synthSeed)
			if err != nil {
				return err
			}

			start := time.Now()
			rel, err := brwt.NewBinaryRelation(pairs)
			if err != nil {
				return fmt.Errorf("build relation: %w", err)
			}
			buildElapsed := time.Since(start)

			log.Info().
				Int("pairs", rel.Size()).
				Int("objects", rel.ObjectAlphabetSize()).
				Int("labels", rel.LabelAlphabetSize()).
				Dur("build_time", buildElapsed).
				Msg("relation built")

			start = time.Now()
			result := rel.Rank(brwt.ObjectID(maxObject), brwt.LabelID(maxLabel))
			queryElapsed := time.Since(start)

			log.Info().
				Int("max_object", maxObject).
				Int("max_label", maxLabel).
				Int("result", result).
				Dur("query_time", queryElapsed).
				Msg("rank query complete")

			fmt.Println(result)
			return nil
		},
	}
	rankCmd.Flags().Int("max-object", 0, "maximum object id (inclusive)")
	rankCmd.Flags().Int("max-label", 0, "maximum label id (inclusive)")
	rankCmd.Flags().StringVar(&fixture, "fixture", "", "CSV file of object,label pairs (one per line); random data is used if omitted")
	rankCmd.Flags().IntVar(&synthObjects, "synth-objects", 1000, "number of objects for synthetic data")
	rankCmd.Flags().IntVar(&synthLabels, "synth-labels", 64, "number of labels for synthetic data")
	rankCmd.Flags().IntVar(&synthPairs, "synth-pairs", 10000, "number of pairs for synthetic data")
	rankCmd.Flags().Uint64Var(&synthSeed, "synth-seed", 1, "seed for synthetic data generation")

	countDistinctCmd := &cobra.Command{
		Use:   "count-distinct",
		Short: "Count distinct labels among pairs with object in [min-object, max-object]",
		RunE: func(cmd *cobra.Command, args []string) error {
			minObject, _ := cmd.Flags().GetInt("min-object")
			maxObject, _ := cmd.Flags().GetInt("max-object")

			pairs, err := loadOrSynthesize(fixture, synthObjects, synthLabels, synthPairs, synthSeed)
			if err != nil {
				return err
			}
			rel, err := brwt.NewBinaryRelation(pairs)
			if err != nil {
				return fmt.Errorf("build relation: %w", err)
			}

			start := time.Now()
			result := rel.CountDistinctLabels(
				brwt.ObjectID(minObject), brwt.ObjectID(maxObject),
				0, brwt.LabelID(rel.LabelAlphabetSize()-1),
			)
			elapsed := time.Since(start)

			log.Info().
				Int("min_object", minObject).
				Int("max_object", maxObject).
				Int("result", result).
				Dur("query_time", elapsed).
				Msg("count-distinct query complete")

			fmt.Println(result)
			return nil
		},
	}
	countDistinctCmd.Flags().Int("min-object", 0, "minimum object id (inclusive)")
	countDistinctCmd.Flags().Int("max-object", 0, "maximum object id (inclusive)")
	countDistinctCmd.Flags().StringVar(&fixture, "fixture", "", "CSV file of object,label pairs (one per line); random data is used if omitted")
	countDistinctCmd.Flags().IntVar(&synthObjects, "synth-objects", 1000, "number of objects for synthetic data")
	countDistinctCmd.Flags().IntVar(&synthLabels, "synth-labels", 64, "number of labels for synthetic data")
	countDistinctCmd.Flags().IntVar(&synthPairs, "synth-pairs", 10000, "number of pairs for synthetic data")
	countDistinctCmd.Flags().Uint64Var(&synthSeed, "synth-seed", 1, "seed for synthetic data generation")

	rootCmd.AddCommand(rankCmd, countDistinctCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("brwtbench failed")
		os.Exit(1)
	}
}

// loadOrSynthesize reads (object,label) pairs from a CSV fixture, or
// generates `pairCount` random deduplicated pairs over the given alphabet
// sizes when no fixture path is given.
func loadOrSynthesize(path string, numObjects, numLabels, pairCount int, seed uint64) ([]brwt.PairType, error) {
	if path != "" {
		return loadFixture(path)
	}
	return synthesizePairs(numObjects, numLabels, pairCount, seed)
}

func loadFixture(path string) ([]brwt.PairType, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	var pairs []brwt.PairType
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse fixture: %w", err)
		}
		obj, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("parse object id %q: %w", record[0], err)
		}
		lab, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("parse label id %q: %w", record[1], err)
		}
		pairs = append(pairs, brwt.PairType{Object: brwt.ObjectID(obj), Label: brwt.LabelID(lab)})
	}
	return pairs, nil
}

func synthesizePairs(numObjects, numLabels, pairCount int, seed uint64) ([]brwt.PairType, error) {
	if numObjects <= 0 || numLabels <= 0 || pairCount <= 0 {
		return nil, fmt.Errorf("synth-objects, synth-labels and synth-pairs must all be positive")
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	seen := make(map[brwt.PairType]bool, pairCount)
	pairs := make([]brwt.PairType, 0, pairCount)
	for len(pairs) < pairCount {
		p := brwt.PairType{
			Object: brwt.ObjectID(rng.IntN(numObjects)),
			Label:  brwt.LabelID(rng.IntN(numLabels)),
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		pairs = append(pairs, p)
	}
	return pairs, nil
}
