package checks

import (
	"railsbp.dev/pkg/railsbp/internal/domain/pattern"
	"railsbp.dev/pkg/railsbp/internal/domain/rule"
	m "railsbp.dev/pkg/railsbp/internal/model"
)

// defaultRoutes are the catch-all routes generated by Rails 2 (map.connect)
// and Rails 3 (match). Comparison is exact: a different string, receiver or
// argument count is not a default route.
var defaultRoutes = []*m.Node{
	m.S(m.KindCall, m.S(m.KindLvar, m.Sym("map")), m.Sym("connect"),
		m.S(m.KindArglist, m.S(m.KindStr, m.Str(":controller/:action/:id")))),
	m.S(m.KindCall, m.S(m.KindLvar, m.Sym("map")), m.Sym("connect"),
		m.S(m.KindArglist, m.S(m.KindStr, m.Str(":controller/:action/:id.:format")))),
	m.S(m.KindCall, m.Void(), m.Sym("match"),
		m.S(m.KindArglist, m.S(m.KindStr, m.Str(":controller(/:action(/:id(.:format)))")))),
}

// NotUseDefaultRoute flags the default catch-all route in config/routes.rb.
var NotUseDefaultRoute = &rule.Definition{
	ID:         "not-use-default-route",
	Summary:    "The generated catch-all route exposes every action; declare RESTful routes instead.",
	Categories: []m.Category{m.CategoryRoute},
	Review: rule.OnCall(func(pass *rule.Pass, node *m.Node) {
		if pattern.MatchAny(node, defaultRoutes...) {
			pass.Report(node, "not use default route")
		}
	}),
}
