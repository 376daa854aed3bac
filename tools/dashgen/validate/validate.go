// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and every metric it selects must be known.
package validate

import (
	"fmt"
	"sort"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/healthwatch/tools/dashgen/rules"
)

// Result collects validation problems. Errors fail generation; warnings
// are reported but do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether there were no errors.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Metrics parses expr and returns the metric names it selects, sorted.
func Metrics(expr string) ([]string, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		if vs, ok := n.(*parser.VectorSelector); ok && vs.Name != "" {
			seen[vs.Name] = true
		}
		return nil
	})

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (r *Result) checkExpr(where, expr string, known map[string]bool) {
	names, err := Metrics(expr)
	if err != nil {
		r.errorf("%s: invalid PromQL %q: %v", where, expr, err)
		return
	}
	if len(names) == 0 {
		r.warnf("%s: expression %q selects no metrics", where, expr)
	}
	for _, name := range names {
		if !known[name] {
			r.errorf("%s: unknown metric %q", where, name)
		}
	}
}

// Dashboard validates every Prometheus target of every panel, including
// panels nested in rows.
func Dashboard(d dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	check := func(p *dashboard.Panel) {
		title := "untitled panel"
		if p.Title != nil {
			title = *p.Title
		}
		if len(p.Targets) == 0 {
			res.warnf("panel %q has no targets", title)
		}
		for _, t := range p.Targets {
			q, ok := t.(*prometheus.Dataquery)
			if !ok {
				res.errorf("panel %q: target is not a Prometheus query", title)
				continue
			}
			res.checkExpr(fmt.Sprintf("panel %q", title), q.Expr, known)
		}
	}

	for i := range d.Panels {
		switch {
		case d.Panels[i].RowPanel != nil:
			for j := range d.Panels[i].RowPanel.Panels {
				check(&d.Panels[i].RowPanel.Panels[j])
			}
		case d.Panels[i].Panel != nil:
			check(d.Panels[i].Panel)
		}
	}
	return res
}

// Rules validates every rule expression. Recording rule names must also be
// known so dashboards and alerts can reference them.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result
	for _, g := range cr.Spec.Groups {
		for _, rule := range g.Rules {
			name := rule.Record
			if name == "" {
				name = rule.Alert
			}
			where := fmt.Sprintf("%s/%s", g.Name, name)

			switch {
			case rule.Record != "" && rule.Alert != "":
				res.errorf("%s: rule sets both record and alert", where)
			case rule.Record != "" && !known[rule.Record]:
				res.errorf("%s: recording rule is not in the known metric set", where)
			case rule.Alert != "" && rule.Labels["severity"] == "":
				res.errorf("%s: alert has no severity label", where)
			}
			res.checkExpr(where, rule.Expr, known)
		}
	}
	return res
}
