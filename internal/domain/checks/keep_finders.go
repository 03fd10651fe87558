package checks

import (
	"slices"

	"railsbp.dev/pkg/railsbp/internal/domain/pattern"
	"railsbp.dev/pkg/railsbp/internal/domain/rule"
	m "railsbp.dev/pkg/railsbp/internal/model"
)

var finders = []string{"find", "all", "first", "last"}

// KeepFindersOnTheirOwnModel flags complex finders called on another model
// from inside a model file, e.g.
//
//	s(:call,
//	  s(:call, s(:self), :comment, s(:arglist)),
//	  :find,
//	  s(:arglist, s(:lit, :all), s(:hash, s(:lit, :conditions), ...)))
//
// The finder should live on the model it queries.
var KeepFindersOnTheirOwnModel = &rule.Definition{
	ID:         "keep-finders-on-their-own-model",
	Summary:    "Finders with conditions invoked on another model belong to that model.",
	Categories: []m.Category{m.CategoryModel},
	Review: rule.OnCall(func(pass *rule.Pass, node *m.Node) {
		if isOtherFinder(node) {
			pass.Report(node, "keep finders on their own model")
		}
	}),
}

// isOtherFinder holds when the message is a finder, the receiver is itself a
// call (another model) and one of the arguments is a hash of conditions.
func isOtherFinder(node *m.Node) bool {
	return slices.Contains(finders, node.Message()) &&
		node.Receiver().Kind() == m.KindCall &&
		pattern.Exists(node.Arguments(), pattern.KindIs(m.KindHash))
}
