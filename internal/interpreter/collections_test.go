package interpreter

import (
	"testing"
)

func expectIntList(t *testing.T, obj Object, want []int64) {
	t.Helper()
	list, ok := obj.(*List)
	if !ok {
		t.Fatalf("expected list, got %T (%s)", obj, obj.Inspect())
	}
	if len(list.Elements) != len(want) {
		t.Fatalf("expected %v, got %s", want, list.Inspect())
	}
	for i, w := range want {
		expectInteger(t, list.Elements[i], w)
	}
}

func TestListIndexing(t *testing.T) {
	result, _ := runSource(t, "[10, 20, 30][1]")
	expectInteger(t, result, 20)

	result, _ = runSource(t, "[10, 20, 30][-1]")
	expectInteger(t, result, 30)

	runError(t, "[1, 2][5]", IndexError)
	runError(t, "[1, 2][-3]", IndexError)
	runError(t, `[1, 2]["x"]`, TypeError)
}

func TestListSlicing(t *testing.T) {
	tests := []struct {
		input string
		want  []int64
	}{
		{"[1, 2, 3, 4, 5][1:3]", []int64{2, 3}},
		{"[1, 2, 3, 4, 5][:2]", []int64{1, 2}},
		{"[1, 2, 3, 4, 5][3:]", []int64{4, 5}},
		{"[1, 2, 3, 4, 5][:]", []int64{1, 2, 3, 4, 5}},
		{"[1, 2, 3, 4, 5][::2]", []int64{1, 3, 5}},
		{"[1, 2, 3, 4, 5][::-1]", []int64{5, 4, 3, 2, 1}},
		{"[1, 2, 3, 4, 5][-2:]", []int64{4, 5}},
		{"[1, 2, 3, 4, 5][:-2]", []int64{1, 2, 3}},
		{"[1, 2, 3, 4, 5][10:]", nil},
		{"[1, 2, 3, 4, 5][3:1]", nil},
		{"[1, 2, 3, 4, 5][3:1:-1]", []int64{4, 3}},
	}
	for _, tt := range tests {
		result, _ := runSource(t, tt.input)
		expectIntList(t, result, tt.want)
	}

	runError(t, "[1, 2, 3][::0]", InvalidOperationError)
}

// Reversing twice gives the original list back.
func TestSliceDoubleReverse(t *testing.T) {
	result, _ := runSource(t, "[1, 2, 3, 4][::-1][::-1]")
	expectIntList(t, result, []int64{1, 2, 3, 4})
}

func TestIndexAssignment(t *testing.T) {
	source := `
xs = [1, 2, 3]
xs[1] = 20
xs[-1] = 30
xs
`
	result, _ := runSource(t, source)
	expectIntList(t, result, []int64{1, 20, 30})

	runError(t, "xs = [1]\nxs[5] = 2", IndexError)
}

// A unit-step slice assignment splices: the list can change length.
func TestSliceAssignmentSplice(t *testing.T) {
	source := `
xs = [1, 2, 3, 4, 5]
xs[1:3] = [9]
xs
`
	result, _ := runSource(t, source)
	expectIntList(t, result, []int64{1, 9, 4, 5})

	source = `
xs = [1, 4]
xs[1:1] = [2, 3]
xs
`
	result, _ = runSource(t, source)
	expectIntList(t, result, []int64{1, 2, 3, 4})

	source = `
xs = [1, 2, 3]
xs[1:2] = 9
xs
`
	result, _ = runSource(t, source)
	expectIntList(t, result, []int64{1, 9, 3})
}

// A stepped slice assignment overwrites in place and stops at the shorter
// side.
func TestSliceAssignmentStepped(t *testing.T) {
	source := `
xs = [1, 2, 3, 4, 5]
xs[::2] = [9, 9]
xs
`
	result, _ := runSource(t, source)
	expectIntList(t, result, []int64{9, 2, 9, 4, 5})

	source = `
xs = [1, 2, 3, 4]
xs[::-1] = [9, 8]
xs
`
	result, _ = runSource(t, source)
	expectIntList(t, result, []int64{1, 2, 8, 9})
}

func TestNestedContainerAssignment(t *testing.T) {
	source := `
grid = [[1, 2], [3, 4]]
grid[1][0] = 30
grid[1][0]
`
	result, _ := runSource(t, source)
	expectInteger(t, result, 30)

	source = `
data = {"servers": [{"host": "a"}, {"host": "b"}]}
data["servers"][1]["host"] = "c"
data.servers[1].host
`
	result, _ = runSource(t, source)
	expectString(t, result, "c")
}

func TestStringIndexAssignment(t *testing.T) {
	source := `
s = "cat"
s[0] = "b"
s
`
	result, _ := runSource(t, source)
	expectString(t, result, "bat")
}

// Hash keys iterate in insertion order; re-assignment keeps the original
// position.
func TestHashInsertionOrder(t *testing.T) {
	source := `
h = {"b": 1, "a": 2}
h["z"] = 3
h["b"] = 10
h.keys()
`
	result, _ := runSource(t, source)
	list := result.(*List)
	want := []string{"b", "a", "z"}
	if len(list.Elements) != len(want) {
		t.Fatalf("expected %v, got %s", want, list.Inspect())
	}
	for i, w := range want {
		expectString(t, list.Elements[i], w)
	}
}

func TestHashAccess(t *testing.T) {
	result, _ := runSource(t, `{"a": 1}["a"]`)
	expectInteger(t, result, 1)

	runError(t, `{"a": 1}["b"]`, KeyError)

	// Member access reads a missing key as null.
	result, _ = runSource(t, `h = {"a": 1}
h.b == null`)
	expectBoolean(t, result, true)

	result, _ = runSource(t, `
h = {"a": 1}
h.b = 2
h["b"]
`)
	expectInteger(t, result, 2)
}

func TestHashRemove(t *testing.T) {
	source := `
h = {"a": 1, "b": 2, "c": 3}
h.remove("b")
h.keys()
`
	result, _ := runSource(t, source)
	list := result.(*List)
	if len(list.Elements) != 2 {
		t.Fatalf("expected 2 keys, got %s", list.Inspect())
	}
	expectString(t, list.Elements[0], "a")
	expectString(t, list.Elements[1], "c")
}

func TestListConcat(t *testing.T) {
	result, _ := runSource(t, "[1, 2] + [3, 4]")
	expectIntList(t, result, []int64{1, 2, 3, 4})

	result, _ = runSource(t, "[1, 2] + 3")
	expectIntList(t, result, []int64{1, 2, 3})

	result, _ = runSource(t, "[1, 2] * 2")
	expectIntList(t, result, []int64{1, 2, 1, 2})
}

func TestListAliasing(t *testing.T) {
	// Lists are references: mutations are visible through every binding.
	source := `
a = [1, 2]
b = a
b.push(3)
a
`
	result, _ := runSource(t, source)
	expectIntList(t, result, []int64{1, 2, 3})
}
