package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// DataSource DDL methods
func (ds DataSource) TableDDL() string {
	return generateDDL(ds, ds.TableName())
}

func (ds DataSource) IndexDDL() []string {
	return []string{}
}

func (ds DataSource) TableName() string {
	return "data_sources"
}

// ObservedProperty DDL methods
func (op ObservedProperty) TableDDL() string {
	return generateDDL(op, op.TableName())
}

func (op ObservedProperty) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_observed_properties_seq ON observed_properties(seq);",
	}
}

func (op ObservedProperty) TableName() string {
	return "observed_properties"
}

// AttributeMapping DDL methods
func (am AttributeMapping) TableDDL() string {
	return generateDDL(am, am.TableName())
}

func (am AttributeMapping) IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_attribute_mappings_key " +
			"ON attribute_mappings(data_source_id, attr_type, source_vocab);",
		"CREATE INDEX IF NOT EXISTS idx_attribute_mappings_seq ON attribute_mappings(seq);",
	}
}

func (am AttributeMapping) TableName() string {
	return "attribute_mappings"
}

// AllDDL returns table and index statements of all models in creation
// order.
func AllDDL() []string {
	var res []string
	for _, v := range DDLModels() {
		res = append(res, v.TableDDL())
		res = append(res, v.IndexDDL()...)
	}
	return res
}

// DDLModels returns all models as DDL generators.
func DDLModels() []DDLGenerator {
	return []DDLGenerator{
		DataSource{},
		ObservedProperty{},
		AttributeMapping{},
	}
}
