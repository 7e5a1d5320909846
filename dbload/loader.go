package dbload

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.rexsapi.dev/rexsapi/db"
	"go.rexsapi.dev/rexsapi/value"
)

// Sentinel errors reported by the loader.
var (
	// ErrNoDatabaseFiles indicates the directory holds no rexsModel
	// files.
	ErrNoDatabaseFiles = errors.New("no database model files found")
	// ErrMalformedDatabase indicates a database file that does not
	// follow the rexsModel schema.
	ErrMalformedDatabase = errors.New("malformed database model")
)

// Loader reads every model database XML file from a directory. It
// implements [db.Loader].
type Loader struct {
	dir string
}

// NewLoader returns a Loader reading rexsModel files from dir. Files are
// matched by the rexs_model_*.xml naming convention of the REXS database
// distribution.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load reads and decodes every database file in the directory.
func (l *Loader) Load() ([]*db.Model, error) {
	matches, err := filepath.Glob(filepath.Join(l.dir, "rexs_model_*.xml"))
	if err != nil {
		return nil, fmt.Errorf("list database files: %w", err)
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoDatabaseFiles, l.dir)
	}

	models := make([]*db.Model, 0, len(matches))

	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		m, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		models = append(models, m)
	}

	return models, nil
}

// xmlModel mirrors the rexsModel document root.
type xmlModel struct {
	XMLName    xml.Name       `xml:"rexsModel"`
	Version    string         `xml:"version,attr"`
	Language   string         `xml:"language,attr"`
	Date       string         `xml:"date,attr"`
	Status     string         `xml:"status,attr"`
	Units      []xmlUnit      `xml:"units>unit"`
	ValueTypes []xmlValueType `xml:"valueTypes>valueType"`
	Attributes []xmlAttribute `xml:"attributes>attribute"`
	Components []xmlComponent `xml:"components>component"`
	Mappings   []xmlMapping   `xml:"componentAttributeMappings>componentAttributeMapping"`
}

type xmlUnit struct {
	ID   uint64 `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type xmlValueType struct {
	ID   uint64 `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type xmlAttribute struct {
	AttributeID  string         `xml:"attributeId,attr"`
	Name         string         `xml:"name,attr"`
	ValueType    uint64         `xml:"valueType,attr"`
	Unit         uint64         `xml:"unit,attr"`
	RangeMin     string         `xml:"rangeMin,attr"`
	RangeMax     string         `xml:"rangeMax,attr"`
	RangeMinOpen string         `xml:"rangeMinIntervalOpen,attr"`
	RangeMaxOpen string         `xml:"rangeMaxIntervalOpen,attr"`
	EnumValues   []xmlEnumValue `xml:"enumValues>enumValue"`
}

type xmlEnumValue struct {
	Value string `xml:"value,attr"`
	Name  string `xml:"name,attr"`
}

type xmlComponent struct {
	ComponentID string `xml:"componentId,attr"`
	Name        string `xml:"name,attr"`
}

type xmlMapping struct {
	ComponentID string `xml:"componentId,attr"`
	AttributeID string `xml:"attributeId,attr"`
}

// Decode turns one rexsModel document into a [db.Model].
func Decode(data []byte) (*db.Model, error) {
	var doc xmlModel

	err := xml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDatabase, err)
	}

	version, err := db.ParseVersion(doc.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDatabase, err)
	}

	status, err := parseStatus(doc.Status)
	if err != nil {
		return nil, err
	}

	releaseDate, err := parseDate(doc.Date)
	if err != nil {
		return nil, err
	}

	units := make([]db.Unit, 0, len(doc.Units))
	unitsByID := make(map[uint64]db.Unit, len(doc.Units))

	for _, u := range doc.Units {
		unit := db.Unit{ID: u.ID, Name: u.Name}
		units = append(units, unit)
		unitsByID[u.ID] = unit
	}

	typesByID := make(map[uint64]value.Type, len(doc.ValueTypes))

	for _, vt := range doc.ValueTypes {
		t, err := value.ParseType(vt.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedDatabase, err)
		}

		typesByID[vt.ID] = t
	}

	attributes := make([]db.Attribute, 0, len(doc.Attributes))

	for _, a := range doc.Attributes {
		t, ok := typesByID[a.ValueType]
		if !ok {
			return nil, fmt.Errorf("%w: attribute %q has unknown value type %d", ErrMalformedDatabase, a.AttributeID, a.ValueType)
		}

		interval, err := parseInterval(a)
		if err != nil {
			return nil, err
		}

		var enum db.EnumValues
		if t == value.Enum || t == value.EnumArray {
			for _, ev := range a.EnumValues {
				enum = append(enum, ev.Value)
			}
		}

		attributes = append(attributes, db.Attribute{
			ID:        a.AttributeID,
			Name:      a.Name,
			ValueType: t,
			Unit:      unitsByID[a.Unit],
			Interval:  interval,
			Enum:      enum,
		})
	}

	attributesByComponent := make(map[string][]string, len(doc.Components))
	for _, m := range doc.Mappings {
		attributesByComponent[m.ComponentID] = append(attributesByComponent[m.ComponentID], m.AttributeID)
	}

	components := make([]db.Component, 0, len(doc.Components))
	for _, c := range doc.Components {
		components = append(components, db.NewComponent(c.ComponentID, c.Name, attributesByComponent[c.ComponentID]...))
	}

	m, err := db.NewModel(version, doc.Language, releaseDate, status, units, attributes, components)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDatabase, err)
	}

	return m, nil
}

func parseStatus(s string) (db.Status, error) {
	switch strings.ToUpper(s) {
	case "RELEASED", "":
		return db.Released, nil
	case "IN_DEVELOPMENT":
		return db.InDevelopment, nil
	}

	return 0, fmt.Errorf("%w: unknown status %q", ErrMalformedDatabase, s)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: bad date %q", ErrMalformedDatabase, s)
}

// parseInterval reads the optional rangeMin/rangeMax attributes. An
// absent open-interval marker defaults to open, matching the database
// distribution's convention.
func parseInterval(a xmlAttribute) (*db.Interval, error) {
	if a.RangeMin == "" && a.RangeMax == "" {
		return nil, nil
	}

	var lo, hi *float64

	if a.RangeMin != "" {
		f, err := value.ParseFloat(a.RangeMin)
		if err != nil {
			return nil, fmt.Errorf("%w: attribute %q rangeMin: %w", ErrMalformedDatabase, a.AttributeID, err)
		}

		lo = &f
	}

	if a.RangeMax != "" {
		f, err := value.ParseFloat(a.RangeMax)
		if err != nil {
			return nil, fmt.Errorf("%w: attribute %q rangeMax: %w", ErrMalformedDatabase, a.AttributeID, err)
		}

		hi = &f
	}

	iv := db.NewInterval(lo, hi, !openMarker(a.RangeMinOpen), !openMarker(a.RangeMaxOpen))

	return &iv, nil
}

func openMarker(s string) bool {
	return s == "" || strings.EqualFold(s, "true")
}
