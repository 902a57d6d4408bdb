// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/folder-export/internal/hierarchy"
)

const sampleLibrary = `<?xml version="1.0" encoding="UTF-8"?>
<library xmlns="http://www.demandware.com/xml/impex/library/2006-10-31" library-id="SiteLibrary">
    <header>
        <default-locale>en</default-locale>
    </header>
    <folder folder-id="root">
        <display-name xml:lang="x-default">Library</display-name>
    </folder>
    <folder folder-id="men">
        <display-name xml:lang="x-default">Men</display-name>
        <parent>root</parent>
    </folder>
    <folder folder-id="shirts">
        <parent> men </parent>
    </folder>
    <folder folder-id="women">
        <parent>root</parent>
    </folder>
    <content content-id="men-banner">
        <display-name xml:lang="x-default">Men banner</display-name>
        <folder-links>
            <classification-link folder-id="men"/>
        </folder-links>
    </content>
    <content content-id="shirt-guide">
        <folder-links>
            <folder-link folder-id="women"/>
        </folder-links>
        <folder-links>
            <classification-link folder-id="shirts"/>
        </folder-links>
    </content>
    <content content-id="women-banner">
        <folder-links>
            <classification-link folder-id="women"/>
        </folder-links>
    </content>
    <content content-id="unfiled"/>
</library>
`

func parseSample(t *testing.T) *Library {
	t.Helper()
	lib, err := Parse([]byte(sampleLibrary))
	require.NoError(t, err)
	return lib
}

func TestParse(t *testing.T) {
	lib := parseSample(t)

	assert.Equal(t, "SiteLibrary", lib.ID())
	assert.Equal(t, []hierarchy.Folder{
		{ID: "root", Parent: "", Seq: 0},
		{ID: "men", Parent: "root", Seq: 1},
		{ID: "shirts", Parent: "men", Seq: 2},
		{ID: "women", Parent: "root", Seq: 3},
	}, lib.Folders())

	content := lib.Content()
	require.Len(t, content, 4)
	assert.Equal(t, "men-banner", content[0].ID)
	assert.Equal(t, []string{"men"}, content[0].Memberships())

	// folder-link elements are not classification links.
	assert.Equal(t, []string{"shirts"}, content[1].Memberships())
	assert.Len(t, content[1].FolderLinks, 2)
	assert.Empty(t, content[1].FolderLinks[0].ClassificationLinks)

	assert.Equal(t, 3, content[3].Seq)
	assert.Empty(t, content[3].FolderLinks)
}

func TestParse_ReturnsCopies(t *testing.T) {
	lib := parseSample(t)
	folders := lib.Folders()
	folders[0].ID = "changed"
	assert.Equal(t, "root", lib.Folders()[0].ID)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		errMsg  string
	}{
		{name: "wrong root", input: `<catalog catalog-id="x"/>`, wantErr: ErrNotLibrary, errMsg: "<catalog>"},
		{name: "empty", input: ``, errMsg: ""},
		{name: "broken XML", input: `<library><folder></library>`, errMsg: "parsing XML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, lib)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestAssemble(t *testing.T) {
	lib := parseSample(t)

	sel, err := hierarchy.Extract(lib.Folders(), lib.Content(), "men", true)
	require.NoError(t, err)

	out, err := lib.Assemble(sel, 4)
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, `<?xml version="1.0" encoding="UTF-8"?>`), text)
	assert.Contains(t, text, `library-id="SiteLibrary"`)
	assert.Contains(t, text, `<default-locale>en</default-locale>`)
	assert.NotContains(t, text, `<folder folder-id="women">`)
	assert.NotContains(t, text, `women-banner`)
	assert.NotContains(t, text, `unfiled`)

	again, err := Parse(out)
	require.NoError(t, err)

	var ids []string
	for _, f := range again.Folders() {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"root", "men", "shirts"}, ids)

	var contentIDs []string
	for _, c := range again.Content() {
		contentIDs = append(contentIDs, c.ID)
	}
	assert.Equal(t, []string{"men-banner", "shirt-guide"}, contentIDs)
}

func TestAssemble_LeavesSourceUntouched(t *testing.T) {
	lib := parseSample(t)

	_, err := lib.Assemble(hierarchy.Selection{}, 2)
	require.NoError(t, err)

	assert.Len(t, lib.Folders(), 4)
	full, err := lib.Assemble(hierarchy.Selection{
		Folders: lib.Folders(),
		Content: lib.Content(),
	}, 0)
	require.NoError(t, err)
	assert.Contains(t, string(full), `women-banner`)
}

func TestAssemble_AddsDeclaration(t *testing.T) {
	lib, err := Parse([]byte(`<library><folder folder-id="a"><parent>root</parent></folder></library>`))
	require.NoError(t, err)

	out, err := lib.Assemble(hierarchy.Selection{Folders: lib.Folders()}, 2)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`), string(out))
	assert.Contains(t, string(out), `<folder folder-id="a">`)
}
