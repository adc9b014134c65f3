package serial

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/pelletier/go-toml"
	"github.com/xtls/xrelay/common/errors"
	"github.com/xtls/xrelay/infra/conf"
)

type offset struct {
	line int
	char int
}

func findOffset(b []byte, o int) *offset {
	if o >= len(b) || o < 0 {
		return nil
	}

	line := 1
	char := 0
	for i, x := range b {
		if i == o {
			break
		}
		if x == '\n' {
			line++
			char = 0
		} else {
			char++
		}
	}

	return &offset{line: line, char: char}
}

// DecodeJSONConfig reads from reader and decode the config into *conf.Config
// syntax error could be detected.
func DecodeJSONConfig(reader io.Reader) (*conf.Config, error) {
	jsonConfig := &conf.Config{}

	jsonContent := bytes.NewBuffer(make([]byte, 0, 1024))
	decoder := json.NewDecoder(io.TeeReader(reader, jsonContent))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(jsonConfig); err != nil {
		var pos *offset
		cause := errors.Cause(err)
		switch tErr := cause.(type) {
		case *json.SyntaxError:
			pos = findOffset(jsonContent.Bytes(), int(tErr.Offset))
		case *json.UnmarshalTypeError:
			pos = findOffset(jsonContent.Bytes(), int(tErr.Offset))
		}
		if pos != nil {
			return nil, errors.New("failed to read config file at line ", pos.line, " char ", pos.char).Base(err)
		}
		return nil, errors.New("failed to read config file").Base(err)
	}

	return jsonConfig, nil
}

// DecodeTOMLConfig reads from reader and decode the config into *conf.Config
// using github.com/pelletier/go-toml and map to convert toml to json.
func DecodeTOMLConfig(reader io.Reader) (*conf.Config, error) {
	tomlFile, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.New("failed to read config file").Base(err)
	}

	configMap := make(map[string]interface{})
	if err := toml.Unmarshal(tomlFile, &configMap); err != nil {
		return nil, errors.New("failed to convert toml to map").Base(err)
	}

	jsonFile, err := json.Marshal(&configMap)
	if err != nil {
		return nil, errors.New("failed to convert map to json").Base(err)
	}

	return DecodeJSONConfig(bytes.NewReader(jsonFile))
}

// DecodeYAMLConfig reads from reader and decode the config into *conf.Config
// using github.com/ghodss/yaml to convert yaml to json.
func DecodeYAMLConfig(reader io.Reader) (*conf.Config, error) {
	yamlFile, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.New("failed to read config file").Base(err)
	}

	jsonFile, err := yaml.YAMLToJSON(yamlFile)
	if err != nil {
		return nil, errors.New("failed to convert yaml to json").Base(err)
	}

	return DecodeJSONConfig(bytes.NewReader(jsonFile))
}

// GetFormatByExtension maps a file extension or format name to a config format.
func GetFormatByExtension(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json", "jsonc":
		return "json"
	case "toml":
		return "toml"
	case "yaml", "yml":
		return "yaml"
	default:
		return ""
	}
}

// DecodeConfig decodes a config in the given format.
func DecodeConfig(format string, reader io.Reader) (*conf.Config, error) {
	switch GetFormatByExtension(format) {
	case "json":
		return DecodeJSONConfig(reader)
	case "toml":
		return DecodeTOMLConfig(reader)
	case "yaml":
		return DecodeYAMLConfig(reader)
	default:
		return nil, errors.New("unknown config format: ", format)
	}
}

// LoadConfigFile decodes the config file at path. An empty or "auto" format
// is picked from the file extension, falling back to JSON.
func LoadConfigFile(path string, format string) (*conf.Config, error) {
	if format == "" || format == "auto" {
		format = GetFormatByExtension(filepath.Ext(path))
		if format == "" {
			format = "json"
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.New("failed to open config file ", path).Base(err)
	}
	defer file.Close()

	config, err := DecodeConfig(format, file)
	if err != nil {
		return nil, errors.New("failed to load config file ", path).Base(err)
	}
	return config, nil
}
