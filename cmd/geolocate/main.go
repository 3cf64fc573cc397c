package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/radixplore/geolocation/lib"
	"github.com/radixplore/geolocation/lib/blocklist"
	"github.com/radixplore/geolocation/lib/geocode"
	"github.com/radixplore/geolocation/lib/mention"
	"github.com/radixplore/geolocation/lib/output"
	"github.com/radixplore/geolocation/lib/resolver"
	"github.com/radixplore/geolocation/lib/score"
	"github.com/radixplore/geolocation/lib/text"
)

// config structure
type geolocateConfig struct {
	lib.BaseConfig
	Input      string
	Output     string
	Blocklist  struct {
		Path string
	}
	Normalizer struct {
		GenericSuffixes []string `mapstructure:"generic_suffixes"`
	}
	Geocoder struct {
		Backend       string
		Nominatim     geocode.NominatimConfig
		Elasticsearch geocode.ElasticsearchConfig
		Cache         struct {
			Enabled bool
			Redis   geocode.RedisConfig
		}
	}
	Resolver resolver.Config
	Scoring  struct {
		Weights score.Weights
	}
}

var config geolocateConfig

func initConfig() {
	// initialise config with defaults.
	err := lib.InitializeConfig("./config/geolocate.yml", map[string]interface{}{
		"log_level": "info",
		"input":     "./output/projects_ner_output.jsonl",
		"output":    "./output/projects_final.jsonl",
		"geocoder": map[string]interface{}{
			"backend": "nominatim",
			"nominatim": map[string]interface{}{
				"url":        "https://nominatim.openstreetmap.org/search",
				"user_agent": "radixplore-geolocation/1.0",
				"limit":      3,
			},
			"elasticsearch": map[string]interface{}{
				"host":  "localhost",
				"port":  9200,
				"index": "gazetteer",
				"size":  3,
			},
			"cache": map[string]interface{}{
				"enabled": false,
				"redis": map[string]interface{}{
					"host": "localhost",
					"port": 6379,
				},
			},
		},
		"resolver": map[string]interface{}{
			"workers":        4,
			"timeout":        "10s",
			"max_qualifiers": 3,
		},
		"scoring": map[string]interface{}{
			"weights": map[string]interface{}{
				"source_confidence": score.DefaultWeights.SourceConfidence,
				"match_kind":        score.DefaultWeights.MatchKind,
				"occurrence":        score.DefaultWeights.Occurrence,
				"ner_confidence":    score.DefaultWeights.NerConfidence,
			},
		},
	}, &config)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}

func main() {
	initConfig()

	engine, err := score.NewEngine(config.Scoring.Weights)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid scoring weights")
	}

	inputFile, err := os.Open(config.Input)
	if err != nil {
		log.Fatal().Err(err).Str("input", config.Input).Msg("could not open NER output")
	}
	mentions, err := mention.Read(inputFile)
	_ = inputFile.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read NER output")
	}
	log.Info().Int("mentions", len(mentions)).Msg("NER output loaded")

	if config.Blocklist.Path != "" {
		bl, err := blocklist.Load(config.Blocklist.Path)
		if err != nil {
			log.Fatal().Err(err).Send()
		}
		mentions = bl.FilterMentions(mentions)
	}

	normalizer := text.NewNormalizer(config.Normalizer.GenericSuffixes)
	projects := mention.Aggregate(mentions, normalizer.Normalize)
	log.Info().Int("projects", len(projects)).Msg("mentions aggregated")

	oracle := newOracle()
	if !oracle.Ready() {
		log.Fatal().Str("backend", config.Geocoder.Backend).Msg("geocoding backend unreachable")
	}

	candidates := resolver.New(oracle, config.Resolver).ResolveAll(context.Background(), projects)

	records := make([]output.FinalOutputRecord, len(projects))
	resolved := 0
	for i, project := range projects {
		scored, considered := engine.Score(project, candidates[i])
		if scored == nil {
			log.Info().Str("project", project.NormalizedName).Msg("no candidate resolved")
		} else {
			resolved++
		}
		records[i] = output.Assemble(project, scored, considered)
	}

	outputFile, err := os.Create(config.Output)
	if err != nil {
		log.Fatal().Err(err).Str("output", config.Output).Int("projects_processed", resolved).Msg("could not create output file")
	}
	if err := output.Write(outputFile, records); err != nil {
		log.Fatal().Err(err).Int("projects_processed", resolved).Msg("could not write output")
	}
	if err := outputFile.Close(); err != nil {
		log.Fatal().Err(err).Send()
	}

	log.Info().
		Int("projects", len(projects)).
		Int("resolved", resolved).
		Str("output", config.Output).
		Msg("geolocation pipeline complete")
}

func newOracle() geocode.Client {
	var oracle geocode.Client
	var err error
	switch config.Geocoder.Backend {
	case "nominatim":
		oracle = geocode.NewNominatimClient(config.Geocoder.Nominatim)
	case "elasticsearch":
		oracle, err = geocode.NewElasticsearchClient(config.Geocoder.Elasticsearch)
		if err != nil {
			log.Fatal().Err(err).Send()
		}
	default:
		log.Fatal().Str("backend", config.Geocoder.Backend).Msg("invalid geocoder backend")
	}

	if config.Geocoder.Cache.Enabled {
		oracle = geocode.NewCachedClient(oracle, config.Geocoder.Cache.Redis)
	}
	return oracle
}
