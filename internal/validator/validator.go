package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/cardpool/internal/set"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// Validator checks a directory of custom set definition files
type Validator struct {
	SetsPath string
	Results  ValidationResults

	// reserved maps codes that are already taken to their owner
	reserved map[string]string
}

func NewValidator(setsPath string) *Validator {
	return &Validator{
		SetsPath: setsPath,
		Results:  ValidationResults{},
		reserved: make(map[string]string),
	}
}

// Reserve marks the codes of the given registry as taken, so definitions
// reusing them are reported
func (v *Validator) Reserve(reg *set.SetRegistry) {
	for _, d := range reg.Descriptors() {
		v.reserved[d.Code] = d.String()
	}
}

func (v *Validator) Validate() (ValidationResults, error) {
	info, err := os.Stat(v.SetsPath)
	if os.IsNotExist(err) {
		return v.Results, fmt.Errorf("set directory not found: %s", v.SetsPath)
	}
	if err != nil {
		return v.Results, fmt.Errorf("error reading set directory: %v", err)
	}
	if !info.IsDir() {
		return v.Results, fmt.Errorf("not a directory: %s", v.SetsPath)
	}

	files, err := v.definitionFiles()
	if err != nil {
		return v.Results, err
	}
	if len(files) == 0 {
		v.Results.Warnings = append(v.Results.Warnings, "no set definition files (*.toml) found")
		return v.Results, nil
	}

	for _, name := range files {
		v.validateDefinition(name)
	}

	return v.Results, nil
}

// definitionFiles lists the *.toml files and warns about everything else
func (v *Validator) definitionFiles() ([]string, error) {
	entries, err := os.ReadDir(v.SetsPath)
	if err != nil {
		return nil, fmt.Errorf("error reading set directory: %v", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("subdirectory %s is ignored", entry.Name()))
			continue
		}
		if filepath.Ext(entry.Name()) != ".toml" {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("file %s is ignored (not a .toml file)", entry.Name()))
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

// validateDefinition checks a single set definition file
func (v *Validator) validateDefinition(name string) {
	var def set.DefinitionFile
	meta, err := toml.DecodeFile(filepath.Join(v.SetsPath, name), &def)
	if err != nil {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("error parsing %s: %v", name, err))
		return
	}

	for _, key := range meta.Undecoded() {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("unknown key %s in %s", key.String(), name))
	}

	s := def.Set
	code := strings.TrimSpace(s.Code)
	if upper := strings.ToUpper(code); upper != code {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("set code %s in %s will be registered as %s", code, name, upper))
		code = upper
	}
	if code == "" {
		v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("set.code is required in %s", name))
	} else if owner, ok := v.reserved[code]; ok {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("set code %s in %s is already used by %s", code, name, owner))
	} else {
		v.reserved[code] = name
	}

	if strings.TrimSpace(s.Name) == "" {
		v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf("set.name is missing in %s", name))
	}

	if s.Type != "" {
		t, err := set.ParseSetType(s.Type)
		if err != nil {
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("%v in %s", err, name))
		} else if !t.IsCustom() {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("set in %s is declared %s, it will not be listed as custom", name, t))
		}
	}

	if s.ReleaseDate == "" {
		v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf("set.release_date is missing in %s", name))
	} else if _, err := time.Parse(set.ReleaseDateLayout, s.ReleaseDate); err != nil {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("invalid release_date %q in %s (expected YYYY-MM-DD)", s.ReleaseDate, name))
	}
}
