package main

import (
	"path/filepath"
	"strings"
)

// DocumentSelector picks canned form templates for an uploaded file. No PDF
// is ever opened: the filename alone decides which templates apply.
type DocumentSelector struct {
	region *Region
}

func NewDocumentSelector(region *Region) *DocumentSelector {
	return &DocumentSelector{region: region}
}

// Select returns fresh template copies for the filename. Trenching and
// traffic uploads get their single matching form; anything else is treated as
// a general project submission and gets the full set.
func (s *DocumentSelector) Select(filename string) []PDFDocument {
	name := strings.ToLower(filepath.Base(filename))

	switch {
	case strings.Contains(name, "trench") || strings.Contains(name, "excavation"):
		return []PDFDocument{s.trenchingPermit()}
	case strings.Contains(name, "traffic"):
		return []PDFDocument{s.trafficControlPlan()}
	default:
		return []PDFDocument{
			s.trenchingPermit(),
			s.trafficControlPlan(),
			s.utilityNotification(),
		}
	}
}

func textField(id, label string, x, y float64) PDFField {
	return PDFField{
		ID:       id,
		Label:    label,
		Type:     "text",
		Position: Position{X: x, Y: y},
	}
}

func (s *DocumentSelector) trenchingPermit() PDFDocument {
	doc := s.region.TrenchDoc
	return PDFDocument{
		ID:   doc.ID,
		Name: doc.Name,
		Type: doc.Type,
		FormFields: []PDFField{
			textField("field1", "Project Description", 30, 20),
			textField("field2", "Street Address", 70, 20),
			textField("field3", "Start Date", 30, 40),
			textField("field4", "Duration (days)", 70, 40),
			textField("field5", "Trench Length (ft)", 30, 60),
			textField("field6", "Trench Width (inches)", 70, 60),
			textField("field7", "Contractor License #", 50, 80),
		},
	}
}

func (s *DocumentSelector) trafficControlPlan() PDFDocument {
	doc := s.region.TrafficDoc
	return PDFDocument{
		ID:   doc.ID,
		Name: doc.Name,
		Type: doc.Type,
		FormFields: []PDFField{
			textField("field1", "Street Classification", 30, 20),
			textField("field2", "Lane Closure", 70, 20),
			textField("field3", "Working Hours", 30, 40),
			textField("field4", "Detour Required", 70, 40),
			textField("field5", "Pedestrian Protection", 50, 60),
		},
	}
}

func (s *DocumentSelector) utilityNotification() PDFDocument {
	doc := s.region.UtilityDoc
	return PDFDocument{
		ID:   doc.ID,
		Name: doc.Name,
		Type: doc.Type,
		FormFields: []PDFField{
			textField("field1", "Ticket Number", 30, 20),
			textField("field2", "Excavation Method", 70, 20),
			textField("field3", "Utility Type", 30, 40),
			textField("field4", "Marking Instructions", 70, 40),
			textField("field5", "Notification Date", 50, 60),
		},
	}
}
