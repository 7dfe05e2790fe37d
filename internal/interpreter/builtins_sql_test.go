package interpreter

import (
	"testing"
)

func runSQL(t *testing.T, source string) Object {
	t.Helper()
	interp := New()
	defer interp.CloseDatabases()
	result, err := interp.Run(source)
	if err != nil {
		t.Fatalf("unexpected error: %s\nsource:\n%s", err, source)
	}
	return result
}

func TestDbRoundTrip(t *testing.T) {
	source := `
h = db_open(":memory:")
db_exec(h, "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT, score REAL)")
db_exec(h, "INSERT INTO users (name, score) VALUES (?, ?)", "ada", 9.5)
db_exec(h, "INSERT INTO users (name, score) VALUES (?, ?)", "grace", 8.0)
rows = db_query(h, "SELECT name, score FROM users ORDER BY id")
db_close(h)
rows[0].name + ":" + rows[1].name
`
	result := runSQL(t, source)
	expectString(t, result, "ada:grace")
}

func TestDbRowShape(t *testing.T) {
	source := `
h = db_open(":memory:")
db_exec(h, "CREATE TABLE t (a INTEGER, b TEXT)")
db_exec(h, "INSERT INTO t VALUES (1, null)")
rows = db_query(h, "SELECT a, b FROM t")
row = rows[0]
[row.keys().join(","), row["a"].type(), (row.b == null).to_string()]
`
	result := runSQL(t, source)
	list := result.(*List)
	expectString(t, list.Elements[0], "a,b")
	expectString(t, list.Elements[1], "integer")
	expectString(t, list.Elements[2], "true")
}

func TestDbExecAffectedRows(t *testing.T) {
	source := `
h = db_open(":memory:")
db_exec(h, "CREATE TABLE t (v INTEGER)")
db_exec(h, "INSERT INTO t VALUES (1)")
db_exec(h, "INSERT INTO t VALUES (2)")
n = db_exec(h, "UPDATE t SET v = v + 1")
db_close(h)
n
`
	result := runSQL(t, source)
	expectInteger(t, result, 2)
}

func TestDbErrors(t *testing.T) {
	runError(t, `db_exec("not-a-handle", "SELECT 1")`, DbError)

	runError(t, `
h = db_open(":memory:")
db_query(h, "SELECT * FROM missing_table")
`, DbError)

	// A closed handle is gone.
	runError(t, `
h = db_open(":memory:")
db_close(h)
db_query(h, "SELECT 1")
`, DbError)
}

func TestDbErrorIsCatchable(t *testing.T) {
	source := `
h = db_open(":memory:")
kind = ""
try
  db_exec(h, "DELETE FROM nowhere")
catch (t)
  kind = t
end
db_close(h)
kind
`
	result := runSQL(t, source)
	expectString(t, result, DbError)
}
