// Package yuidoc models the data.json document written by YUIDoc.
//
// Only the subset of fields dtsgen consumes is declared; every other field in
// the document is ignored when decoding.
package yuidoc

import "sort"

// Access is the visibility recorded by @private/@protected/@public.
type Access string

const (
	AccessPublic    Access = "public"
	AccessPrivate   Access = "private"
	AccessProtected Access = "protected"
)

// ItemType is the kind of a class item.
type ItemType string

const (
	ItemMethod   ItemType = "method"
	ItemProperty ItemType = "property"
	ItemEvent    ItemType = "event"
)

// Document is the whole YUIDoc dump.
type Document struct {
	Project    Project             `json:"project" yaml:"project"`
	Classes    map[string]ClassDoc `json:"classes" yaml:"classes"`
	ClassItems []ClassItemDoc      `json:"classitems" yaml:"classitems"`
}

// Project describes the documented framework.
type Project struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Version     string `json:"version" yaml:"version"`
	URL         string `json:"url" yaml:"url"`
}

// ClassDoc is one documented class or namespace.
type ClassDoc struct {
	Name        string `json:"name" yaml:"name"`
	ShortName   string `json:"shortname" yaml:"shortname"`
	Namespace   string `json:"namespace" yaml:"namespace"`
	Access      Access `json:"access" yaml:"access"`
	File        string `json:"file" yaml:"file"`
	Line        int    `json:"line" yaml:"line"`
	Description string `json:"description" yaml:"description"`
	Module      string `json:"module" yaml:"module"`
}

// ClassItemDoc is one documented member of a class.
type ClassItemDoc struct {
	Class       string     `json:"class" yaml:"class"`
	Name        string     `json:"name" yaml:"name"`
	ItemType    ItemType   `json:"itemtype" yaml:"itemtype"`
	Access      Access     `json:"access" yaml:"access"`
	Description string     `json:"description" yaml:"description"`
	File        string     `json:"file" yaml:"file"`
	Line        int        `json:"line" yaml:"line"`
	Type        string     `json:"type" yaml:"type"`
	Params      []ParamDoc `json:"params" yaml:"params"`
	Return      *ReturnDoc `json:"return" yaml:"return"`
	Module      string     `json:"module" yaml:"module"`
	Namespace   string     `json:"namespace" yaml:"namespace"`
}

// ParamDoc is one @param of a method or event.
type ParamDoc struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Type        string `json:"type" yaml:"type"`
	Multiple    bool   `json:"multiple" yaml:"multiple"`
	Optional    bool   `json:"optional" yaml:"optional"`
}

// ReturnDoc is the @return of a method.
type ReturnDoc struct {
	Description string `json:"description" yaml:"description"`
	Type        string `json:"type" yaml:"type"`
}

// ClassNames returns the class keys in sorted order.
func (d *Document) ClassNames() []string {
	names := make([]string, 0, len(d.Classes))
	for name := range d.Classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ItemsFor returns the items whose owner is exactly className, in document order.
func (d *Document) ItemsFor(className string) []ClassItemDoc {
	var items []ClassItemDoc
	for _, item := range d.ClassItems {
		if item.Class == className {
			items = append(items, item)
		}
	}
	return items
}
