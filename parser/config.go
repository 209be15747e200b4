package parser

import (
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/heathj/tagsoup/parser/spec"
)

// CDATAPolicy says how script and style content is handed to serializers.
type CDATAPolicy string

const (
	CDATAAsText            CDATAPolicy = "text"
	CDATAForScriptAndStyle CDATAPolicy = "cdata"
)

// Config holds the cleaning options of one document.
type Config struct {
	// PruneTags names elements that are always removed.
	PruneTags []string `yaml:"prune_tags" validate:"dive,required"`
	// PruneEmpty removes elements that have no attributes and no content.
	PruneEmpty bool `yaml:"prune_empty"`
	// MoveContentsUp keeps the children of a pruned element in its place.
	MoveContentsUp bool `yaml:"move_contents_up"`
	// CarryNamespacesOnMove copies a pruned element's namespace declarations
	// onto the children moved out of it.
	CarryNamespacesOnMove bool `yaml:"carry_namespaces_on_move"`
	// NamespacesAware turns xmlns attributes into namespace declarations.
	NamespacesAware bool `yaml:"namespaces_aware"`
	// ForeignMarkup classifies svg, math and foreign-namespace subtrees and
	// keeps their names case sensitive.
	ForeignMarkup bool        `yaml:"foreign_markup"`
	CDATAPolicy   CDATAPolicy `yaml:"cdata_policy" validate:"omitempty,oneof=text cdata"`
	Debug         bool        `yaml:"debug"`

	PruneConditions []spec.Condition   `yaml:"-" validate:"-"`
	ContentModel    *ContentModel      `yaml:"-" validate:"-"`
	Logger          logrus.FieldLogger `yaml:"-" validate:"-"`
}

var validate = validator.New()

func DefaultConfig() *Config {
	return &Config{
		NamespacesAware: true,
		ForeignMarkup:   true,
		CDATAPolicy:     CDATAAsText,
	}
}

// LoadConfig reads a YAML configuration. Keys missing from the document keep
// their DefaultConfig value.
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

func (c *Config) contentModel() *ContentModel {
	if c.ContentModel != nil {
		return c.ContentModel
	}
	return DefaultContentModel
}

func (c *Config) logger() logrus.FieldLogger {
	if c.Logger != nil {
		return c.Logger
	}
	if c.Debug {
		l := logrus.New()
		l.SetLevel(logrus.DebugLevel)
		return l
	}
	return logrus.StandardLogger()
}

func (c *Config) shouldPruneTag(n *spec.Node) bool {
	for _, name := range c.PruneTags {
		if (spec.NameCondition{Name: name}).Satisfy(n) {
			return true
		}
	}
	for _, cond := range c.PruneConditions {
		if cond != nil && cond.Satisfy(n) {
			return true
		}
	}
	return false
}
