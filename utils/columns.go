package utils

import (
	"fmt"
	"reflect"
)

// EscapedColumnList lists the quoted column names of a db model struct, in
// field order, from its `db` tags.
func EscapedColumnList[T any]() []string {
	var model T
	modelType := reflect.TypeOf(model)
	columns := make([]string, 0, modelType.NumField())
	for i := 0; i < modelType.NumField(); i++ {
		tag := modelType.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		columns = append(columns, fmt.Sprintf("%q", tag))
	}
	return columns
}
