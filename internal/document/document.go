// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document reads library XML documents into the folder and content
// model and writes filtered selections back out as standalone documents.
//
// A library document looks like:
//
//	<library library-id="SiteLibrary">
//	  <folder folder-id="men"><parent>root</parent></folder>
//	  <content content-id="banner">
//	    <folder-links><classification-link folder-id="men"/></folder-links>
//	  </content>
//	</library>
//
// Everything other than the top-level folder and content elements is carried
// through to the output unchanged.
package document

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/beevik/etree"

	"github.com/pdiddy/folder-export/internal/hierarchy"
)

const (
	libraryTag            = "library"
	folderTag             = "folder"
	parentTag             = "parent"
	contentTag            = "content"
	folderLinksTag        = "folder-links"
	classificationLinkTag = "classification-link"

	libraryIDAttr = "library-id"
	folderIDAttr  = "folder-id"
	contentIDAttr = "content-id"
)

// ErrNotLibrary is returned when a document's root element is not <library>.
var ErrNotLibrary = errors.New("document root is not a library element")

// Library is a parsed library document. The parsed tree is never modified;
// Assemble works on a copy.
type Library struct {
	doc     *etree.Document
	folders []hierarchy.Folder
	content []hierarchy.ContentItem
}

// Parse reads a library document. Namespaces on element names are ignored.
func Parse(data []byte) (*Library, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: document is empty", ErrNotLibrary)
	}
	if root.Tag != libraryTag {
		return nil, fmt.Errorf("%w: found <%s>", ErrNotLibrary, root.FullTag())
	}

	lib := &Library{doc: doc}
	for i, el := range root.SelectElements(folderTag) {
		lib.folders = append(lib.folders, parseFolder(el, i))
	}
	for i, el := range root.SelectElements(contentTag) {
		lib.content = append(lib.content, parseContent(el, i))
	}
	return lib, nil
}

func parseFolder(el *etree.Element, seq int) hierarchy.Folder {
	f := hierarchy.Folder{
		ID:  el.SelectAttrValue(folderIDAttr, ""),
		Seq: seq,
	}
	if p := el.SelectElement(parentTag); p != nil {
		f.Parent = strings.TrimSpace(p.Text())
	}
	return f
}

func parseContent(el *etree.Element, seq int) hierarchy.ContentItem {
	c := hierarchy.ContentItem{
		ID:  el.SelectAttrValue(contentIDAttr, ""),
		Seq: seq,
	}
	for _, fl := range el.SelectElements(folderLinksTag) {
		var link hierarchy.FolderLink
		for _, cl := range fl.SelectElements(classificationLinkTag) {
			link.ClassificationLinks = append(link.ClassificationLinks, hierarchy.ClassificationLink{
				FolderID: cl.SelectAttrValue(folderIDAttr, ""),
			})
		}
		c.FolderLinks = append(c.FolderLinks, link)
	}
	return c
}

// ID returns the library-id attribute of the root element, if any.
func (l *Library) ID() string {
	return l.doc.Root().SelectAttrValue(libraryIDAttr, "")
}

// Folders returns the library's folder records in document order.
func (l *Library) Folders() []hierarchy.Folder {
	return slices.Clone(l.folders)
}

// Content returns the library's content items in document order.
func (l *Library) Content() []hierarchy.ContentItem {
	return slices.Clone(l.content)
}
