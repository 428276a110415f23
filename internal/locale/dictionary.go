package locale

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

//go:embed locales/active.*.toml
var localeFS embed.FS

var (
	// ErrEmptyLanguage is returned when a language tag is empty.
	ErrEmptyLanguage = errors.New("locale: language cannot be empty")
	// ErrInvalidFile is returned for a locale file that cannot be parsed.
	ErrInvalidFile = errors.New("locale: invalid locale file")
)

// Dictionary maps a locale tag to its semantic keys and localized strings.
// A dictionary handed to a Resolver must not be modified afterwards.
type Dictionary map[string]map[string]string

// Languages returns the locale tags present in the dictionary, sorted.
func (d Dictionary) Languages() []string {
	return slices.Sorted(maps.Keys(d))
}

// Lookup returns the string for key in the given locale.
func (d Dictionary) Lookup(localeTag, key string) (string, bool) {
	msgs, ok := d[localeTag]
	if !ok {
		return "", false
	}
	v, ok := msgs[key]
	return v, ok
}

// Clone returns a deep copy of the dictionary.
func (d Dictionary) Clone() Dictionary {
	out := make(Dictionary, len(d))
	for lang, msgs := range d {
		out[lang] = maps.Clone(msgs)
	}
	return out
}

// Merge returns a new dictionary holding d overlaid with other; keys in
// other win.
func (d Dictionary) Merge(other Dictionary) Dictionary {
	out := d.Clone()
	for lang, msgs := range other {
		if out[lang] == nil {
			out[lang] = make(map[string]string, len(msgs))
		}
		maps.Copy(out[lang], msgs)
	}
	return out
}

// Default returns the built-in dictionary (en, es, fr). It is parsed from
// the embedded locale files once, on first use, and must be treated as
// read-only.
var Default = sync.OnceValue(func() Dictionary {
	sub, err := fs.Sub(localeFS, "locales")
	if err != nil {
		panic("locale: embedded locales: " + err.Error())
	}
	dict, err := LoadDictionary(sub)
	if err != nil {
		panic("locale: embedded locales: " + err.Error())
	}
	return dict
})

// LoadDictionary reads every active.<tag>.toml file at the root of fsys.
// Nested tables are flattened with dots, so
//
//	[time]
//	morning = "morning"
//
// becomes the key "time.morning".
func LoadDictionary(fsys fs.FS) (Dictionary, error) {
	files, err := fs.Glob(fsys, "active.*.toml")
	if err != nil {
		return nil, fmt.Errorf("listing locale files: %w", err)
	}

	dict := make(Dictionary, len(files))
	for _, file := range files {
		lang := strings.TrimSuffix(strings.TrimPrefix(path.Base(file), "active."), ".toml")
		if lang == "" {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidFile, file, ErrEmptyLanguage)
		}

		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", file, err)
		}

		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, file, err)
		}

		if dict[lang] == nil {
			dict[lang] = make(map[string]string)
		}
		maps.Copy(dict[lang], flatten(raw, ""))
	}

	return dict, nil
}

// LoadDir reads locale files from a directory on disk.
func LoadDir(dir string) (Dictionary, error) {
	return LoadDictionary(os.DirFS(dir))
}

func flatten(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flatten(v, fullKey))
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}
