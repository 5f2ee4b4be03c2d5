// SPDX-License-Identifier: MPL-2.0

package walk

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/Symantec/config-compare/internal/aggregate"
)

func mergeOne(t *testing.T, source aggregate.Source, raw string) (*aggregate.Aggregate, *Walker, error) {
	t.Helper()
	agg := aggregate.New()
	w := New(agg)
	err := w.MergeSource(source, raw)
	return agg, w, err
}

func requireValue(t *testing.T, agg *aggregate.Aggregate, path, value string, source aggregate.Source) {
	t.Helper()
	node := agg.Node(path)
	if node == nil {
		t.Fatalf("path %q not recorded; have paths %v", path, agg.Paths())
	}
	set, ok := node.Values[value]
	if !ok {
		t.Fatalf("path %q missing value %q; have values %v", path, value, maps.Keys(node.Values))
	}
	if !set.Contains(source) {
		t.Errorf("path %q value %q missing source %q", path, value, source)
	}
}

func requirePaths(t *testing.T, agg *aggregate.Aggregate, want []string) {
	t.Helper()
	got := agg.Paths()
	if !slices.Equal(got, want) {
		t.Fatalf("Paths() = %v, want %v", got, want)
	}
}

func TestMergeSource_YAMLByExtension(t *testing.T) {
	t.Parallel()

	agg, w, err := mergeOne(t, "config.yaml", "server:\n  host: web\n  port: 8080\n")
	if err != nil {
		t.Fatalf("MergeSource: %v", err)
	}
	if len(w.Diagnostics()) != 0 {
		t.Errorf("unexpected diagnostics: %v", w.Diagnostics())
	}

	requirePaths(t, agg, []string{"server", "server : host", "server : port"})
	requireValue(t, agg, "server : host", "web", "config.yaml")
	requireValue(t, agg, "server : port", "8080", "config.yaml")
}

func TestMergeSource_ExtensionCaseInsensitive(t *testing.T) {
	t.Parallel()

	agg, _, err := mergeOne(t, "config.YML", "key: value\n")
	if err != nil {
		t.Fatalf("MergeSource: %v", err)
	}
	requireValue(t, agg, "key", "value", "config.YML")
}

func TestMergeSource_TOMLByExtension(t *testing.T) {
	t.Parallel()

	agg, w, err := mergeOne(t, "app.toml", "host = \"db\"\n\n[limits]\nmax = 10\n")
	if err != nil {
		t.Fatalf("MergeSource: %v", err)
	}
	if len(w.Diagnostics()) != 0 {
		t.Errorf("unexpected diagnostics: %v", w.Diagnostics())
	}

	requirePaths(t, agg, []string{"host", "limits", "limits : max"})
	requireValue(t, agg, "host", "db", "app.toml")
	requireValue(t, agg, "limits : max", "10", "app.toml")
}

func TestMergeSource_UnparseableYAMLFallsBack(t *testing.T) {
	t.Parallel()

	agg, w, err := mergeOne(t, "broken.yaml", "items: [\n")
	if err != nil {
		t.Fatalf("MergeSource: %v", err)
	}

	diags := w.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %v, want exactly one", diags)
	}
	d := diags[0]
	if d.Severity != SeverityWarning || d.Code != "yaml_parse_fallback" {
		t.Errorf("diagnostic = %+v, want warning yaml_parse_fallback", d)
	}
	if d.Source != "broken.yaml" || d.Cause == nil {
		t.Errorf("diagnostic source/cause = %q/%v", d.Source, d.Cause)
	}

	// The content still compares, degraded to freeform handling.
	requireValue(t, agg, "", "items: [", "broken.yaml")
}

func TestMergeSource_UnparseableTOMLFallsBack(t *testing.T) {
	t.Parallel()

	_, w, err := mergeOne(t, "broken.toml", "= broken\n")
	if err != nil {
		t.Fatalf("MergeSource: %v", err)
	}

	diags := w.Diagnostics()
	if len(diags) != 1 || diags[0].Code != "toml_parse_fallback" {
		t.Fatalf("diagnostics = %v, want one toml_parse_fallback", diags)
	}
}

func TestMergeSource_IntermediateMappingNodesArePaths(t *testing.T) {
	t.Parallel()

	agg, _, err := mergeOne(t, "a.json", "{\n  \"server\": {\"port\": 8080}\n}")
	if err != nil {
		t.Fatalf("MergeSource: %v", err)
	}

	requirePaths(t, agg, []string{"server", "server : port"})
	server := agg.Node("server")
	if !server.Clusters.Contains("a.json") {
		t.Error("intermediate node missing source presence")
	}
	if len(server.Values) != 0 {
		t.Errorf("intermediate node has values: %v", server.Values)
	}
}

func TestMergeSource_MarkupCompositeRows(t *testing.T) {
	t.Parallel()

	raw := `<config><database host="db1" port="8020">primary</database></config>`
	agg, _, err := mergeOne(t, "app.xml", raw)
	if err != nil {
		t.Fatalf("MergeSource: %v", err)
	}

	composite := "config : database : #text - @host - @port"
	requirePaths(t, agg, []string{"config", "config : database", composite})
	requireValue(t, agg, composite, "primary - db1 - 8020", "app.xml")
}

func TestMergeSource_MarkupNestedInTextComparesStructurally(t *testing.T) {
	t.Parallel()

	raw := `<config><inner><![CDATA[<nested>x</nested>]]></inner></config>`
	agg, _, err := mergeOne(t, "app.xml", raw)
	if err != nil {
		t.Fatalf("MergeSource: %v", err)
	}

	requirePaths(t, agg, []string{"config", "config : inner", "config : inner : nested"})
	requireValue(t, agg, "config : inner : nested", "x", "app.xml")
}

func TestMergeSource_SequenceElementsShareOneMarker(t *testing.T) {
	t.Parallel()

	agg, _, err := mergeOne(t, "list.json", "[\n  \"a\",\n  \"b\"\n]")
	if err != nil {
		t.Fatalf("MergeSource: %v", err)
	}

	requirePaths(t, agg, []string{aggregate.ElementMarker})
	requireValue(t, agg, aggregate.ElementMarker, "a", "list.json")
	requireValue(t, agg, aggregate.ElementMarker, "b", "list.json")
}

func TestMergeSource_SequenceOfMappingsFails(t *testing.T) {
	t.Parallel()

	_, _, err := mergeOne(t, "records.json", "[\n  {\"a\": 1}\n]")
	if !errors.Is(err, ErrUnsupportedShape) {
		t.Fatalf("err = %v, want ErrUnsupportedShape", err)
	}

	var shapeErr *UnsupportedShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("err = %T, want *UnsupportedShapeError", err)
	}
	if shapeErr.Source != "records.json" {
		t.Errorf("Source = %q, want records.json", shapeErr.Source)
	}
	if shapeErr.Path != aggregate.ElementMarker {
		t.Errorf("Path = %q, want %q", shapeErr.Path, aggregate.ElementMarker)
	}
	if !strings.Contains(shapeErr.Dump, "document.Document") {
		t.Errorf("Dump does not render the offending structure: %q", shapeErr.Dump)
	}
}

func TestMergeSource_RegistersSourceBeforeWalking(t *testing.T) {
	t.Parallel()

	agg, _, err := mergeOne(t, "empty.txt", "")
	if err != nil {
		t.Fatalf("MergeSource: %v", err)
	}
	if agg.SourceCount() != 1 {
		t.Errorf("SourceCount() = %d, want 1", agg.SourceCount())
	}
	if agg.Len() != 0 {
		t.Errorf("empty source recorded %d paths, want 0", agg.Len())
	}
}

func TestDiagnostics_ReturnsCopy(t *testing.T) {
	t.Parallel()

	_, w, err := mergeOne(t, "broken.yaml", "items: [\n")
	if err != nil {
		t.Fatalf("MergeSource: %v", err)
	}

	first := w.Diagnostics()
	first[0].Code = "mutated"
	if w.Diagnostics()[0].Code != "yaml_parse_fallback" {
		t.Error("Diagnostics() exposed internal state")
	}
}
