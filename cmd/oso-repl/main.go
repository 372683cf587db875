// Command oso-repl is a small, hardwired driver for the generic-rule
// dispatch core: it loads a handful of rules into a Registry, then walks
// a demo host through the dispatch event loop for a handful of queries,
// printing the host questions asked and the rules that come back.
//
// There is no policy parser here (out of scope, see SPEC_FULL.md); rules
// are built directly with oso's Term constructors, the way a future
// parser's output would look once lowered.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/terminalkitten/oso/internal/config"
	"github.com/terminalkitten/oso/internal/obslog"
	"github.com/terminalkitten/oso/pkg/oso"
)

func main() {
	cfgPath := flag.String("config", "", "path to a TOML config file (optional)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "config:", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := obslog.New(cfg.LogLevel, os.Stderr)

	// Each run gets its own session id, purely for tagging this demo's log
	// lines — it plays no role in the host-question correlation ids, which
	// stay a monotonic uint64 (see oso.Question.CorrelationID).
	session := uuid.New()

	fmt.Println("=== oso generic-rule dispatch demo ===")
	fmt.Printf("session %s\n\n", session)

	maxArity := cfg.MaxTrieDepth

	groundMatch(logger, maxArity)
	wildcardOrdering(logger, maxArity)
	subclassSpecificity(logger, maxArity)
	fieldPatternRefinement(logger, maxArity)
	hostProtocolOrdering(logger, maxArity)
	arityMismatch(logger, maxArity)
}

func sym(name string) oso.Symbol { return oso.NewSymbol(name, oso.Span{}) }

func runDemo(label string, reg *oso.Registry, host *demoHost, name string, args ...oso.Term) {
	fmt.Printf("%s\n", label)

	handle := reg.Dispatch(context.Background(), sym(name), args)
	defer handle.Close()

	matches := 0
	for {
		ev, err := handle.Next()
		if err != nil {
			fmt.Printf("   error: %v\n", err)
			return
		}
		switch ev.Tag {
		case oso.EventTagHostQuestion:
			ans := host.answer(ev.Question)
			fmt.Printf("   ask  %s -> %v\n", ev.Question.Kind, ans.Bool)
			if err := handle.Answer(ev.Question.CorrelationID, ans); err != nil {
				fmt.Printf("   answer error: %v\n", err)
				return
			}
		case oso.EventTagRuleReady:
			matches++
			fmt.Printf("   match #%d: rule defid=%d\n", matches, ev.Rule.DefID)
		case oso.EventTagDone:
			fmt.Printf("   done, %d match(es)\n\n", matches)
			return
		case oso.EventTagError:
			fmt.Printf("   error: %v\n\n", ev.Err)
			return
		}
	}
}

// groundMatch is spec scenario 1: rules indexed purely on ground literals.
func groundMatch(logger obslog.Logger, maxArity int) {
	reg := oso.New(oso.WithLogger(logger), oso.WithMaxArity(maxArity))
	host := newDemoHost()

	must(reg.Insert(&oso.Rule{
		Name: sym("allow"),
		Params: []oso.Parameter{
			{Parameter: oso.NewSymbol("alice", oso.Span{})},
			{Parameter: oso.NewSymbol("GET", oso.Span{})},
			{Parameter: oso.NewString("/r/a", oso.Span{})},
		},
	}))
	must(reg.Insert(&oso.Rule{
		Name: sym("allow"),
		Params: []oso.Parameter{
			{Parameter: oso.NewSymbol("bob", oso.Span{})},
			{Parameter: oso.NewSymbol("GET", oso.Span{})},
			{Parameter: oso.NewString("/r/b", oso.Span{})},
		},
	}))

	runDemo("1. ground-literal matrix", reg, host, "allow",
		oso.NewSymbol("alice", oso.Span{}), oso.NewSymbol("GET", oso.Span{}), oso.NewString("/r/a", oso.Span{}))
}

// wildcardOrdering is spec scenario 2: a variable parameter alongside
// ground ones, all dispatched through the same generic rule.
func wildcardOrdering(logger obslog.Logger, maxArity int) {
	reg := oso.New(oso.WithLogger(logger), oso.WithMaxArity(maxArity))
	host := newDemoHost()

	anyAction := oso.Fresh("action", oso.Span{})
	must(reg.Insert(&oso.Rule{
		Name: sym("allow"),
		Params: []oso.Parameter{
			{Parameter: oso.NewSymbol("alice", oso.Span{})},
			{Parameter: anyAction},
			{Parameter: oso.NewString("/r/a", oso.Span{})},
		},
	}))
	must(reg.Insert(&oso.Rule{
		Name: sym("allow"),
		Params: []oso.Parameter{
			{Parameter: oso.NewSymbol("alice", oso.Span{})},
			{Parameter: oso.NewSymbol("DELETE", oso.Span{})},
			{Parameter: oso.NewString("/r/a", oso.Span{})},
		},
	}))

	runDemo("2. wildcard parameter alongside a ground rule", reg, host, "allow",
		oso.NewSymbol("alice", oso.Span{}), oso.NewSymbol("DELETE", oso.Span{}), oso.NewString("/r/a", oso.Span{}))
}

// subclassSpecificity is spec scenario 3: two rules differing only by
// specializer class, ordered through a host IsSubclass question.
func subclassSpecificity(logger obslog.Logger, maxArity int) {
	reg := oso.New(oso.WithLogger(logger), oso.WithMaxArity(maxArity))
	host := newDemoHost()
	host.registerClass("SuperUser", "User")
	host.registerClass("User")
	host.registerInstance("u1", "SuperUser", nil)

	must(reg.Insert(&oso.Rule{
		Name: sym("allow"),
		Params: []oso.Parameter{
			{Parameter: oso.Fresh("actor", oso.Span{}), Specializer: patternFor("User")},
		},
	}))
	must(reg.Insert(&oso.Rule{
		Name: sym("allow"),
		Params: []oso.Parameter{
			{Parameter: oso.Fresh("actor", oso.Span{}), Specializer: patternFor("SuperUser")},
		},
	}))

	runDemo("3. subclass specificity via a host question", reg, host, "allow",
		oso.NewInstanceLiteral(sym("SuperUser"), oso.Dict{}, oso.InstanceHandle("u1"), oso.Span{}))
}

// fieldPatternRefinement is spec scenario 4: a specializer with a field
// pattern narrows which instances a rule applies to.
func fieldPatternRefinement(logger obslog.Logger, maxArity int) {
	reg := oso.New(oso.WithLogger(logger), oso.WithMaxArity(maxArity))
	host := newDemoHost()
	host.registerClass("Report")
	host.registerClass("User")
	host.registerInstance("r1", "Report", map[string]oso.Term{
		"author": oso.NewInstanceLiteral(sym("User"), oso.Dict{}, oso.InstanceHandle("alice"), oso.Span{}),
	})
	host.registerInstance("alice", "User", nil)

	fields := oso.Dict{Fields: map[string]oso.Term{"author": oso.Fresh("a", oso.Span{})}}
	must(reg.Insert(&oso.Rule{
		Name: sym("allow"),
		Params: []oso.Parameter{
			{Parameter: oso.Fresh("report", oso.Span{}), Specializer: &oso.Pattern{Class: sym("Report"), Fields: &fields}},
		},
	}))

	runDemo("4. field-pattern refinement", reg, host, "allow",
		oso.NewInstanceLiteral(sym("Report"), oso.Dict{}, oso.InstanceHandle("r1"), oso.Span{}))
}

// hostProtocolOrdering is spec scenario 5: the same subclass query run
// twice should ask identical host questions in identical order.
func hostProtocolOrdering(logger obslog.Logger, maxArity int) {
	reg := oso.New(oso.WithLogger(logger), oso.WithMaxArity(maxArity))
	host := newDemoHost()
	host.registerClass("SuperUser", "User")
	host.registerClass("User")
	host.registerInstance("u1", "SuperUser", nil)

	must(reg.Insert(&oso.Rule{
		Name: sym("allow"),
		Params: []oso.Parameter{{Parameter: oso.Fresh("a", oso.Span{}), Specializer: patternFor("User")}},
	}))
	must(reg.Insert(&oso.Rule{
		Name: sym("allow"),
		Params: []oso.Parameter{{Parameter: oso.Fresh("a", oso.Span{}), Specializer: patternFor("SuperUser")}},
	}))

	arg := oso.NewInstanceLiteral(sym("SuperUser"), oso.Dict{}, oso.InstanceHandle("u1"), oso.Span{})
	runDemo("5. deterministic replay, run 1", reg, host, "allow", arg)
	runDemo("   deterministic replay, run 2", reg, host, "allow", arg)
}

// arityMismatch is spec scenario 6: inserting a rule with a mismatched
// arity fails without disturbing the first rule.
func arityMismatch(logger obslog.Logger, maxArity int) {
	reg := oso.New(oso.WithLogger(logger), oso.WithMaxArity(maxArity))
	host := newDemoHost()

	must(reg.Insert(&oso.Rule{
		Name:   sym("allow"),
		Params: []oso.Parameter{{Parameter: oso.NewSymbol("alice", oso.Span{})}},
	}))

	err := reg.Insert(&oso.Rule{
		Name: sym("allow"),
		Params: []oso.Parameter{
			{Parameter: oso.NewSymbol("alice", oso.Span{})},
			{Parameter: oso.NewSymbol("GET", oso.Span{})},
		},
	})

	fmt.Println("6. arity mismatch on insert")
	fmt.Printf("   second insert: %v\n", err)
	runDemo("   first rule still queryable", reg, host, "allow", oso.NewSymbol("alice", oso.Span{}))
}

func patternFor(class string) *oso.Pattern {
	return &oso.Pattern{Class: sym(class)}
}

func must(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
