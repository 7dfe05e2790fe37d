package interpreter

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// dbHandle validates a database handle argument against the open set.
func (i *Interpreter) dbHandle(name string, args []Object) (*sql.DB, Object) {
	if len(args) == 0 {
		return nil, newError(ParameterCountMismatchError, "%s expects a database handle", name)
	}
	h, ok := args[0].(*String)
	if !ok {
		return nil, newError(TypeError, "%s expects a database handle string", name)
	}
	db, found := i.dbs[h.Value]
	if !found {
		return nil, newError(DbError, "unknown database handle %q", h.Value)
	}
	return db, nil
}

// builtinDbOpen opens a SQLite database file (":memory:" works) and yields
// an opaque handle string.
func (i *Interpreter) builtinDbOpen(args []Object) Object {
	if err := argCount("db_open", args, 1); err != nil {
		return err
	}
	path, ok := args[0].(*String)
	if !ok {
		return newError(TypeError, "db_open expects a path string, got %s",
			strings.ToLower(string(args[0].Type())))
	}
	db, err := sql.Open("sqlite", path.Value)
	if err != nil {
		return newError(DbError, "cannot open %q: %v", path.Value, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return newError(DbError, "cannot open %q: %v", path.Value, err)
	}
	handle := uuid.NewString()
	i.dbs[handle] = db
	return &String{Value: handle}
}

func (i *Interpreter) builtinDbExec(args []Object) Object {
	db, errObj := i.dbHandle("db_exec", args)
	if errObj != nil {
		return errObj
	}
	if len(args) < 2 {
		return newError(ParameterCountMismatchError, "db_exec expects a statement string")
	}
	stmt, ok := args[1].(*String)
	if !ok {
		return newError(TypeError, "db_exec expects a statement string")
	}
	params, errObj := sqlParams(args[2:])
	if errObj != nil {
		return errObj
	}
	result, err := db.Exec(stmt.Value, params...)
	if err != nil {
		return newError(DbError, "exec failed: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		affected = 0
	}
	return &Integer{Value: affected}
}

// builtinDbQuery runs a query and yields each row as a hash keyed by column
// name, in result order.
func (i *Interpreter) builtinDbQuery(args []Object) Object {
	db, errObj := i.dbHandle("db_query", args)
	if errObj != nil {
		return errObj
	}
	if len(args) < 2 {
		return newError(ParameterCountMismatchError, "db_query expects a query string")
	}
	query, ok := args[1].(*String)
	if !ok {
		return newError(TypeError, "db_query expects a query string")
	}
	params, errObj := sqlParams(args[2:])
	if errObj != nil {
		return errObj
	}

	rows, err := db.Query(query.Value, params...)
	if err != nil {
		return newError(DbError, "query failed: %v", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return newError(DbError, "query failed: %v", err)
	}

	var out []Object
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for idx := range values {
			ptrs[idx] = &values[idx]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return newError(DbError, "scan failed: %v", err)
		}
		row := NewHash()
		for idx, col := range cols {
			row.Set(col, sqlValueToObject(values[idx]))
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return newError(DbError, "query failed: %v", err)
	}
	return &List{Elements: out}
}

func (i *Interpreter) builtinDbClose(args []Object) Object {
	if err := argCount("db_close", args, 1); err != nil {
		return err
	}
	h, ok := args[0].(*String)
	if !ok {
		return newError(TypeError, "db_close expects a database handle string")
	}
	db, found := i.dbs[h.Value]
	if !found {
		return newError(DbError, "unknown database handle %q", h.Value)
	}
	delete(i.dbs, h.Value)
	if err := db.Close(); err != nil {
		return newError(DbError, "close failed: %v", err)
	}
	return NULL
}

// CloseDatabases releases every database this session still holds open.
func (i *Interpreter) CloseDatabases() {
	for handle, db := range i.dbs {
		db.Close()
		delete(i.dbs, handle)
	}
}

func sqlParams(args []Object) ([]interface{}, Object) {
	params := make([]interface{}, 0, len(args))
	for _, a := range args {
		switch v := a.(type) {
		case *Null:
			params = append(params, nil)
		case *Boolean:
			params = append(params, v.Value)
		case *Integer:
			params = append(params, v.Value)
		case *Float:
			params = append(params, v.Value)
		case *String:
			params = append(params, v.Value)
		default:
			return nil, newError(TypeError, "cannot bind %s as a query parameter",
				strings.ToLower(string(a.Type())))
		}
	}
	return params, nil
}

func sqlValueToObject(v interface{}) Object {
	switch val := v.(type) {
	case nil:
		return NULL
	case bool:
		return nativeBoolToBooleanObject(val)
	case int64:
		return &Integer{Value: val}
	case float64:
		return &Float{Value: val}
	case string:
		return &String{Value: val}
	case []byte:
		return &String{Value: string(val)}
	case time.Time:
		return &String{Value: val.Format(time.RFC3339)}
	}
	return &String{Value: fmt.Sprint(v)}
}
