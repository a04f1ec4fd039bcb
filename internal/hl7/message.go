// Package hl7 reads the parts of HL7v2 ORU result messages the portal shows.
package hl7

import (
	"fmt"
	"strings"

	"labportal/internal/domain"
)

// Message is a parsed HL7v2 message
type Message struct {
	Type      string // MSH-9, e.g. "ORU^R01"
	ControlID string // MSH-10
	Segments  []Segment
}

// Segment is a single line; Fields[0] is field 1 (for MSH, MSH-1)
type Segment struct {
	Name   string
	Fields [][]string // components per field
}

// Parse splits raw message text into segments. It accepts \r, \n and \r\n
// separators and requires the first segment to be MSH.
func Parse(raw string) (*Message, error) {
	text := strings.ReplaceAll(raw, "\r\n", "\r")
	text = strings.ReplaceAll(text, "\n", "\r")

	msg := &Message{}
	for _, line := range strings.Split(text, "\r") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		seg, err := parseSegment(line)
		if err != nil {
			return nil, fmt.Errorf("hl7: %w", err)
		}
		msg.Segments = append(msg.Segments, seg)
	}

	if len(msg.Segments) == 0 {
		return nil, fmt.Errorf("hl7: no segments found")
	}
	if msg.Segments[0].Name != "MSH" {
		return nil, fmt.Errorf("hl7: first segment must be MSH, got %q", msg.Segments[0].Name)
	}

	msh := &msg.Segments[0]
	msg.Type = strings.Join(msh.Field(9), "^")
	msg.ControlID = msh.Component(10, 1)

	return msg, nil
}

func parseSegment(line string) (Segment, error) {
	if len(line) < 3 {
		return Segment{}, fmt.Errorf("segment too short: %q", line)
	}

	if strings.HasPrefix(line, "MSH") {
		seg := Segment{Name: "MSH"}
		if len(line) < 4 {
			return seg, nil
		}
		sep := string(line[3])
		seg.Fields = append(seg.Fields, []string{sep})
		for i, part := range strings.Split(line[4:], sep) {
			if i == 0 {
				// MSH-2 holds the encoding characters, not components
				seg.Fields = append(seg.Fields, []string{part})
				continue
			}
			seg.Fields = append(seg.Fields, strings.Split(part, "^"))
		}
		return seg, nil
	}

	parts := strings.Split(line, "|")
	seg := Segment{Name: parts[0]}
	for _, part := range parts[1:] {
		// only the first repetition is kept
		first := strings.SplitN(part, "~", 2)[0]
		seg.Fields = append(seg.Fields, strings.Split(first, "^"))
	}
	return seg, nil
}

// Field returns the components of the 1-based field index
func (s *Segment) Field(index int) []string {
	if index < 1 || index > len(s.Fields) {
		return nil
	}
	return s.Fields[index-1]
}

// Component returns a 1-based component of a 1-based field
func (s *Segment) Component(field, component int) string {
	f := s.Field(field)
	if component < 1 || component > len(f) {
		return ""
	}
	return f[component-1]
}

// SegmentsNamed returns all segments with the given name
func (m *Message) SegmentsNamed(name string) []Segment {
	var result []Segment
	for _, seg := range m.Segments {
		if seg.Name == name {
			result = append(result, seg)
		}
	}
	return result
}

// Observations extracts OBX lines
func (m *Message) Observations() []domain.Observation {
	var obs []domain.Observation
	for _, seg := range m.SegmentsNamed("OBX") {
		obs = append(obs, domain.Observation{
			Code:   seg.Component(3, 1),
			Name:   firstNonEmpty(seg.Component(3, 2), seg.Component(3, 1)),
			Value:  seg.Component(5, 1),
			Units:  seg.Component(6, 1),
			Range:  seg.Component(7, 1),
			Flag:   seg.Component(8, 1),
			Status: seg.Component(11, 1),
		})
	}
	return obs
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
