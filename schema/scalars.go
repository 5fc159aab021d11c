package schema

import (
	"fmt"
	"strconv"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	"scribe/model"
)

// Cursor is an opaque pagination position.
var Cursor = graphql.NewScalar(graphql.ScalarConfig{
	Name:         "Cursor",
	Description:  "Opaque pagination cursor",
	Serialize:    func(v interface{}) interface{} { return v },
	ParseValue:   parseString,
	ParseLiteral: parseLiteral,
})

// scalars maps every primitive to its scalar, named after the primitive.
// Values are rendered by model.Ty.Value; inputs are kept as strings and
// parsed against the member type by storage.
var scalars = func() map[model.PrimitiveType]*graphql.Scalar {
	out := make(map[model.PrimitiveType]*graphql.Scalar, len(model.PrimitiveTypes))
	for _, t := range model.PrimitiveTypes {
		out[t] = graphql.NewScalar(graphql.ScalarConfig{
			Name:         t.String(),
			Description:  fmt.Sprintf("Cairo %s", t),
			Serialize:    serialize,
			ParseValue:   parseString,
			ParseLiteral: parseLiteral,
		})
	}
	return out
}()

func scalarNames() map[string]struct{} {
	names := map[string]struct{}{Cursor.Name(): {}}
	for _, s := range scalars {
		names[s.Name()] = struct{}{}
	}
	return names
}

func serialize(v interface{}) interface{} {
	switch v := v.(type) {
	case model.Felt:
		return v.Hex()
	case *model.Felt:
		if v == nil {
			return nil
		}
		return v.Hex()
	}
	return v
}

func parseString(v interface{}) interface{} {
	switch v := v.(type) {
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return nil
}

func parseLiteral(valueAST ast.Value) interface{} {
	switch v := valueAST.(type) {
	case *ast.StringValue:
		return v.Value
	case *ast.IntValue:
		return v.Value
	case *ast.BooleanValue:
		return parseString(v.Value)
	}
	return nil
}
