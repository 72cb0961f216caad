// Package manifest loads a YAML description of annotated Java classes into a type graph and the seed
// elements of a keep-name scan.
//
// A manifest looks like this:
//
//	packages:
//	  - name: app
//	    classes:
//	      - name: Client
//	        extends: app.Base<model.User>
//	        fields:
//	          - name: store
//	            type: cache.Store<model.User>
//	            annotations: ["@Inject"]
//	      - name: AppModule
//	        annotations: ["@Module(injects = {Client.class})"]
//	        methods:
//	          - name: provideUser
//	            returns: model.User
//	            annotations: ["@Provides"]
package manifest

import (
	"bytes"
	"io"

	"github.com/alecthomas/errors"
	"gopkg.in/yaml.v3"
)

type File struct {
	Packages []*Package `yaml:"packages"`
}

type Package struct {
	// Name is the dotted package name, empty for the default package.
	Name    string   `yaml:"name"`
	Classes []*Class `yaml:"classes"`
}

type Class struct {
	Name string `yaml:"name"`
	// TypeParams are type variable declarations, eg. "T" or "T extends Comparable<T>".
	TypeParams []string `yaml:"typeParams"`
	// Extends is the superclass reference. Classes without one extend the root type.
	Extends      string    `yaml:"extends"`
	Interface    bool      `yaml:"interface"`
	Annotations  []string  `yaml:"annotations"`
	Fields       []*Field  `yaml:"fields"`
	Constructors []*Method `yaml:"constructors"`
	Methods      []*Method `yaml:"methods"`
	Classes      []*Class  `yaml:"classes"`
}

type Field struct {
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	Annotations []string `yaml:"annotations"`
}

type Method struct {
	Name       string   `yaml:"name"`
	TypeParams []string `yaml:"typeParams"`
	// Returns defaults to void.
	Returns     string   `yaml:"returns"`
	Annotations []string `yaml:"annotations"`
	Params      []*Param `yaml:"params"`
}

type Param struct {
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	Annotations []string `yaml:"annotations"`
}

// Parse a manifest. Unknown keys are rejected.
func Parse(path string, data []byte) (*File, error) {
	file := &File{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(file); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("%s: failed to parse manifest: %w", path, err)
	}
	return file, nil
}
