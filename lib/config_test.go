package lib

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

type config struct {
	Input    string
	Geocoder struct {
		Backend string
	}
	KeyNotInConfigMap string
}

var (
	inputValue     = "./output/projects_ner_output.jsonl"
	backendValue   = "nominatim"
	configFileName string
)

func TestMain(m *testing.M) {
	configMap := map[string]interface{}{
		"input": inputValue,
		"geocoder": map[string]interface{}{
			"backend": backendValue,
		},
	}

	filename, err := createConfigFile(configMap, ".", "*.yml")
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Remove(filename)
	os.Exit(code)
}

func TestInitializeConfigFromPath(t *testing.T) {
	resetFlags()

	var parsedConfig config
	err := InitializeConfig(configFileName, map[string]interface{}{}, &parsedConfig)

	assert.NoError(t, err)
	assert.Equal(t, inputValue, parsedConfig.Input)
	assert.Equal(t, backendValue, parsedConfig.Geocoder.Backend)
}

func TestInitializeConfigEnvOverride(t *testing.T) {
	resetFlags()

	overrideValue := "elasticsearch"
	os.Setenv("INPUT", overrideValue)
	os.Setenv("GEOCODER_BACKEND", overrideValue)
	os.Setenv("KEYNOTINCONFIGMAP", overrideValue)

	var parsedConfig config
	err := InitializeConfig(configFileName, map[string]interface{}{}, &parsedConfig)

	assert.NoError(t, err)
	assert.Equal(t, overrideValue, parsedConfig.Input)
	assert.Equal(t, overrideValue, parsedConfig.Geocoder.Backend)

	// If an env var does not exist in the config map, viper will not parse it
	assert.Equal(t, "", parsedConfig.KeyNotInConfigMap)

	os.Unsetenv("INPUT")
	os.Unsetenv("GEOCODER_BACKEND")
	os.Unsetenv("KEYNOTINCONFIGMAP")
}

func TestInitializeConfigWithFlag(t *testing.T) {
	resetFlags()

	overrideConfigPath := "*.yml"
	pflag.Set(configFlag, overrideConfigPath)
	overrideValue := "this is overridden!"
	overrideConfigMap := map[string]interface{}{
		"input": overrideValue,
	}

	filename, err := createConfigFile(overrideConfigMap, ".", overrideConfigPath)
	if err != nil {
		panic(err)
	}

	var parsedConfig config
	err = InitializeConfig(configFileName, map[string]interface{}{}, &parsedConfig)

	assert.NoError(t, err)
	assert.Equal(t, overrideValue, parsedConfig.Input)

	os.Remove(filename)
}

func createConfigFile(configMap map[string]interface{}, path, name string) (fileName string, err error) {
	file, err := ioutil.TempFile(path, name)
	if err != nil {
		return "", err
	}
	configFileName = file.Name()

	data, err := yaml.Marshal(&configMap)
	if err != nil {
		panic(err)
	}

	if err := ioutil.WriteFile(configFileName, data, 0); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func resetFlags() {
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
}
