// SPDX-License-Identifier: MPL-2.0

package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarkup_AttributesCarryPrefix(t *testing.T) {
	t.Parallel()

	doc, err := ParseMarkup(`<config><db host="db1" port="8020"/></config>`)
	require.NoError(t, err)
	require.Equal(t, KindMapping, doc.Kind)
	assert.True(t, doc.MarkupOrigin)

	config := doc.Children["config"]
	require.NotNil(t, config)
	assert.True(t, config.MarkupOrigin)

	db := config.Children["db"]
	require.NotNil(t, db)
	assert.Equal(t, []string{"@host", "@port"}, db.SortedKeys())
	assert.Equal(t, "db1", db.Children["@host"].Text)
	assert.Equal(t, "8020", db.Children["@port"].Text)
}

func TestParseMarkup_TextContentKey(t *testing.T) {
	t.Parallel()

	doc, err := ParseMarkup(`<a id="1">hello</a>`)
	require.NoError(t, err)

	a := doc.Children["a"]
	require.NotNil(t, a)
	assert.Equal(t, "1", a.Children["@id"].Text)
	assert.Equal(t, "hello", a.Children["#text"].Text)
}

func TestParseMarkup_SimpleElementIsStringChild(t *testing.T) {
	t.Parallel()

	doc, err := ParseMarkup(`<a><name>web</name></a>`)
	require.NoError(t, err)

	a := doc.Children["a"]
	require.NotNil(t, a)
	name := a.Children["name"]
	require.NotNil(t, name)
	assert.True(t, name.IsStringScalar())
	assert.Equal(t, "web", name.Text)
}

func TestParseMarkup_RepeatedSiblingsBecomeSequence(t *testing.T) {
	t.Parallel()

	doc, err := ParseMarkup(`<hosts><host>node1</host><host>node2</host></hosts>`)
	require.NoError(t, err)

	hosts := doc.Children["hosts"]
	require.NotNil(t, hosts)
	host := hosts.Children["host"]
	require.NotNil(t, host)
	require.Equal(t, KindSequence, host.Kind)
	require.Len(t, host.Elements, 2)
	assert.Equal(t, "node1", host.Elements[0].Text)
	assert.Equal(t, "node2", host.Elements[1].Text)
}

func TestParseMarkup_EmptyElementIsAbsent(t *testing.T) {
	t.Parallel()

	doc, err := ParseMarkup(`<a><empty></empty><hollow/></a>`)
	require.NoError(t, err)

	a := doc.Children["a"]
	require.NotNil(t, a)
	assert.Equal(t, ScalarAbsent, a.Children["empty"].Scalar)
	assert.Equal(t, ScalarAbsent, a.Children["hollow"].Scalar)
}

func TestParseMarkup_EmptyAttributeStaysString(t *testing.T) {
	t.Parallel()

	doc, err := ParseMarkup(`<a name="">x</a>`)
	require.NoError(t, err)

	a := doc.Children["a"]
	require.NotNil(t, a)
	name := a.Children["@name"]
	require.NotNil(t, name)
	assert.True(t, name.IsStringScalar())
	assert.Equal(t, "", name.Text)
}

func TestParseMarkup_DeclarationProloguesSkipped(t *testing.T) {
	t.Parallel()

	doc, err := ParseMarkup(`<?xml version="1.0" encoding="UTF-8"?><!-- generated --><root><x>1</x></root>`)
	require.NoError(t, err)

	root := doc.Children["root"]
	require.NotNil(t, root)
	assert.Equal(t, "1", root.Children["x"].Text)
}

func TestParseMarkup_CDATAKeptAsText(t *testing.T) {
	t.Parallel()

	doc, err := ParseMarkup(`<a><inner><![CDATA[<nested>x</nested>]]></inner></a>`)
	require.NoError(t, err)

	a := doc.Children["a"]
	require.NotNil(t, a)
	assert.Equal(t, "<nested>x</nested>", a.Children["inner"].Text)
}

func TestParseMarkup_MalformedInput(t *testing.T) {
	t.Parallel()

	_, err := ParseMarkup(`<a><b></a>`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "markup parse")
}
