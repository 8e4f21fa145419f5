package persist

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseXML reads values from ANT- and POM-style XML:
//
//	<property name="project" value="demo"/>
//	<property name="src.dir" location="../src"/>
//	<properties><project>demo</project></properties>
//
// Any well-formedness error or a document without a root element is an
// error.
func ParseXML(data []byte) (map[string]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader

	values := make(map[string]string)
	var (
		stack    []string
		sawRoot  bool
		propName string
		text     strings.Builder
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			sawRoot = true
			parent := ""
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			stack = append(stack, t.Name.Local)

			if t.Name.Local == "property" {
				name, value, ok := propertyAttrs(t.Attr)
				if ok {
					values[name] = value
				}
				continue
			}
			if parent == "properties" {
				propName = t.Name.Local
				text.Reset()
			}
		case xml.CharData:
			if propName != "" {
				text.Write(t)
			}
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, errors.New("malformed xml: unbalanced end element")
			}
			if propName != "" && t.Name.Local == propName {
				values[propName] = strings.TrimSpace(text.String())
				propName = ""
			}
			stack = stack[:len(stack)-1]
		}
	}

	if !sawRoot {
		return nil, errors.New("xml document has no root element")
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("malformed xml: unclosed element <%s>", stack[len(stack)-1])
	}
	return values, nil
}

// propertyAttrs extracts name plus value (or location) from a <property>.
func propertyAttrs(attrs []xml.Attr) (name, value string, ok bool) {
	var hasValue bool
	for _, a := range attrs {
		switch a.Name.Local {
		case "name":
			name = a.Value
		case "value", "location":
			value = a.Value
			hasValue = true
		}
	}
	return name, value, name != "" && hasValue
}
