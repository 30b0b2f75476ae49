// Package models - Definitions for model output class sets.
package models

import "github.com/pkg/errors"

// Family identifies the dataset a class set was trained on.
type Family string

const (
	// FamilyVOC is the Pascal VOC family (20 classes, no background).
	FamilyVOC Family = "voc"
)

// OutputClass represents one detection label.
type OutputClass struct {
	// The integer index returned by the model.
	Index int
	// The human-readable label.
	Name string
}

// OutputClassSet ties a family to its full, ordered list of labels.
type OutputClassSet struct {
	// Class set identifier.
	Family Family
	// Classes in the order the network emits them.
	Classes []OutputClass
}

// Names returns the labels of the set ordered by class index.
//
// Returns:
//   - []string: A freshly allocated slice of label names.
func (s *OutputClassSet) Names() []string {
	names := make([]string, len(s.Classes))
	for i, c := range s.Classes {
		names[i] = c.Name
	}
	return names
}

// Name returns the label for a class index.
func (s *OutputClassSet) Name(idx int) (string, error) {
	if idx < 0 || idx >= len(s.Classes) {
		return "", errors.Errorf("index %d out of range for family %q", idx, s.Family)
	}
	return s.Classes[idx].Name, nil
}

// Index returns the class index for a label.
func (s *OutputClassSet) Index(name string) (int, error) {
	for _, c := range s.Classes {
		if c.Name == name {
			return c.Index, nil
		}
	}
	return -1, errors.Errorf("name %q not found in family %q", name, s.Family)
}

// ClassManager holds all registered class sets.
type ClassManager struct {
	sets map[Family]*OutputClassSet
}

// NewClassManager initializes and registers the given sets.
func NewClassManager(sets ...*OutputClassSet) *ClassManager {
	mgr := &ClassManager{sets: make(map[Family]*OutputClassSet, len(sets))}
	for _, set := range sets {
		mgr.sets[set.Family] = set
	}
	return mgr
}

// Get returns the class set registered for a family.
func (m *ClassManager) Get(family Family) (*OutputClassSet, error) {
	set, ok := m.sets[family]
	if !ok {
		return nil, errors.Errorf("family %q not registered", family)
	}
	return set, nil
}

// VOCClasses is the Pascal VOC label set in Tiny-YOLOv2 output order.
var VOCClasses = OutputClassSet{
	Family: FamilyVOC,
	Classes: []OutputClass{
		{0, "aeroplane"},
		{1, "bicycle"},
		{2, "bird"},
		{3, "boat"},
		{4, "bottle"},
		{5, "bus"},
		{6, "car"},
		{7, "cat"},
		{8, "chair"},
		{9, "cow"},
		{10, "diningtable"},
		{11, "dog"},
		{12, "horse"},
		{13, "motorbike"},
		{14, "person"},
		{15, "pottedplant"},
		{16, "sheep"},
		{17, "sofa"},
		{18, "train"},
		{19, "tvmonitor"},
	},
}
