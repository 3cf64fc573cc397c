package main

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/radixplore/geolocation/lib"
	"github.com/radixplore/geolocation/lib/geocode"
	"github.com/radixplore/geolocation/lib/resolver"
	"github.com/radixplore/geolocation/lib/score"
	"github.com/radixplore/geolocation/lib/text"
)

// config structure
type geolocationAPIConfig struct {
	lib.BaseConfig
	Server struct {
		HttpPort int `mapstructure:"http_port"`
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

var config geolocationAPIConfig

func initConfig() {
	// initialise config with defaults.
	err := lib.InitializeConfig("./config/geolocation-api.yml", map[string]interface{}{
		"log_level": "info",
		"server": map[string]interface{}{
			"http_port": 8080,
		},
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

	var oracle geocode.Client
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

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(lib.JsonLogFormatter), gin.Recovery(), cors.Default())

	c := controller{
		normalizer: text.NewNormalizer(config.Normalizer.GenericSuffixes),
		resolver:   resolver.New(oracle, config.Resolver),
		engine:     engine,
		oracle:     oracle,
	}
	s := server{controller: c}
	s.RegisterRoutes(r)

	if err := r.Run(fmt.Sprintf(":%d", config.Server.HttpPort)); err != nil {
		log.Fatal().Err(err).Send()
	}
}
