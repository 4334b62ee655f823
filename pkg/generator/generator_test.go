package generator

import (
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-poemgen/pkg/format"
	"github.com/goliatone/go-poemgen/pkg/fragment"
	"github.com/goliatone/go-poemgen/pkg/order"
	"github.com/goliatone/go-poemgen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-poemgen/pkg/testsupport"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGenerate_DefaultsSelectLastFour(t *testing.T) {
	got, err := New().Generate(4)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "default_4.golden"), got)

	want := "This is the man all tattered and torn that kissed\n        the maiden all forlorn that milked\n        the cow with the crumpled horn that tossed\n        the dog that worried."
	if got != want {
		t.Fatalf("generate(4) mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestGenerate_DuplicateFormatter(t *testing.T) {
	g := New(WithOrderer(order.NewIdentity()), WithFormatter(format.NewDuplicate()))

	got, err := g.Generate(2)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "echo_2.golden"), got)
}

func TestGenerate_Scenarios(t *testing.T) {
	var scenarios []struct {
		Name      string `yaml:"name"`
		Orderer   string `yaml:"orderer"`
		Formatter string `yaml:"formatter"`
		Count     int    `yaml:"count"`
		Want      string `yaml:"want"`
	}
	testsupport.MustLoadYAML(t, filepath.Join("testdata", "scenarios.yaml"), &scenarios)
	if len(scenarios) == 0 {
		t.Fatalf("no scenarios loaded")
	}

	orders := order.DefaultRegistry()
	formats := format.DefaultRegistry()

	for _, sc := range scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			o, err := orders.Get(sc.Orderer)
			if err != nil {
				t.Fatalf("orderer: %v", err)
			}
			f, err := formats.Get(sc.Formatter)
			if err != nil {
				t.Fatalf("formatter: %v", err)
			}

			got, err := New(WithOrderer(o), WithFormatter(f)).Generate(sc.Count)
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if diff := cmp.Diff(sc.Want, got); diff != "" {
				t.Fatalf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerate_ZeroYieldsEmptyPhrase(t *testing.T) {
	got, err := New().Generate(0)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "This is ." {
		t.Fatalf("expected empty phrase, got %q", got)
	}
}

func TestGenerate_InvalidCount(t *testing.T) {
	g := New()
	for _, n := range []int{-1, 13, 100} {
		out, err := g.Generate(n)
		if err == nil {
			t.Fatalf("Generate(%d): expected error, got %q", n, out)
		}
		if !errors.Is(err, ErrInvalidCount) {
			t.Fatalf("Generate(%d): expected ErrInvalidCount, got %v", n, err)
		}
		if out != "" {
			t.Fatalf("Generate(%d): expected empty output on error, got %q", n, out)
		}
		hints := errors.GetAllHints(err)
		if len(hints) == 0 || !strings.Contains(hints[0], "between 0 and 12") {
			t.Fatalf("Generate(%d): expected hint, got %v", n, hints)
		}
	}
}

func TestGenerate_FullSource(t *testing.T) {
	got, err := New().Generate(fragment.HouseSize)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(got, "This is the cat that killed") || !strings.HasSuffix(got, "the dog that worried.") {
		t.Fatalf("unexpected full poem %q", got)
	}
	if n := strings.Count(got, format.DefaultSeparator); n != fragment.HouseSize-1 {
		t.Fatalf("expected %d separators, got %d", fragment.HouseSize-1, n)
	}
}

func TestGenerate_ShuffleSelectsPermutedTail(t *testing.T) {
	all := fragment.House().All()
	members := make(map[string]bool, len(all))
	for _, f := range all {
		members[string(f)] = true
	}

	g := New(WithOrderer(order.NewShuffle()))
	for trial := 0; trial < 200; trial++ {
		got, err := g.Generate(4)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		phrase := strings.TrimSuffix(strings.TrimPrefix(got, "This is "), ".")
		lines := strings.Split(phrase, format.DefaultSeparator)
		if len(lines) != 4 {
			t.Fatalf("trial %d: expected 4 lines, got %d (%q)", trial, len(lines), got)
		}
		seen := make(map[string]bool, 4)
		for _, line := range lines {
			if !members[line] {
				t.Fatalf("trial %d: unknown line %q", trial, line)
			}
			if seen[line] {
				t.Fatalf("trial %d: duplicated line %q", trial, line)
			}
			seen[line] = true
		}
	}
}

func TestGenerate_SwappingFormatterKeepsSelection(t *testing.T) {
	orderer := order.NewShuffle(order.WithSeed(11))
	ordered := orderer.Order(fragment.House().All())
	selected := ordered.Last(3)

	plain, err := New(WithOrderer(fixedOrderer(ordered)), WithFormatter(format.NewPlain())).Generate(3)
	if err != nil {
		t.Fatalf("plain: %v", err)
	}
	echo, err := New(WithOrderer(fixedOrderer(ordered)), WithFormatter(format.NewDuplicate())).Generate(3)
	if err != nil {
		t.Fatalf("echo: %v", err)
	}

	wantPlain := "This is " + strings.Join(selected.Strings(), format.DefaultSeparator) + "."
	if plain != wantPlain {
		t.Fatalf("plain mismatch\nwant: %q\n got: %q", wantPlain, plain)
	}

	echoed := make([]string, len(selected))
	for i, line := range selected {
		echoed[i] = string(line) + " " + string(line)
	}
	wantEcho := "This is " + strings.Join(echoed, format.DefaultSeparator) + "."
	if echo != wantEcho {
		t.Fatalf("echo mismatch\nwant: %q\n got: %q", wantEcho, echo)
	}
}

func TestGenerate_SwappingOrdererKeepsFormatting(t *testing.T) {
	formatter := format.NewDuplicate(format.WithSeparator(" | "))

	sequential, err := New(WithFormatter(formatter)).Generate(2)
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	reversed, err := New(WithOrderer(order.Reverse{}), WithFormatter(formatter)).Generate(2)
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}

	if sequential != "This is the cow with the crumpled horn that tossed the cow with the crumpled horn that tossed | the dog that worried the dog that worried." {
		t.Fatalf("unexpected sequential output %q", sequential)
	}
	if reversed != "This is that rat that ate that rat that ate | the cat that killed the cat that killed." {
		t.Fatalf("unexpected reversed output %q", reversed)
	}
}

func TestGenerate_CustomSource(t *testing.T) {
	g := New(WithSource(fragment.NewStatic("one", "two", "three")))
	if g.Size() != 3 {
		t.Fatalf("expected size 3, got %d", g.Size())
	}

	got, err := g.Generate(2)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "This is two\n        three." {
		t.Fatalf("unexpected output %q", got)
	}
	if _, err := g.Generate(4); !errors.Is(err, ErrInvalidCount) {
		t.Fatalf("expected ErrInvalidCount for custom source, got %v", err)
	}
}

func TestNew_NilOptionsKeepDefaults(t *testing.T) {
	g := New(nil, WithOrderer(nil), WithFormatter(nil), WithSource(nil), WithCarrier(nil), WithLogger(nil))

	got, err := g.Generate(1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "This is the dog that worried." {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestGenerate_DoesNotLeakMutationsIntoSource(t *testing.T) {
	mutating := order.Func(func(seq fragment.Sequence) fragment.Sequence {
		for i := range seq {
			seq[i] = fragment.Fragment(strings.ToUpper(string(seq[i])))
		}
		return seq
	})
	source := fragment.NewStatic("a", "b")

	if _, err := New(WithSource(source), WithOrderer(mutating)).Generate(2); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if diff := cmp.Diff(fragment.FromStrings("a", "b"), source.All()); diff != "" {
		t.Fatalf("source mutated (-want +got):\n%s", diff)
	}
}

func TestContractChecks_RejectBrokenOrderer(t *testing.T) {
	dropping := order.Func(func(seq fragment.Sequence) fragment.Sequence {
		return seq[1:]
	})
	mutating := order.Func(func(seq fragment.Sequence) fragment.Sequence {
		seq[0] = "the goat that never was"
		return seq
	})

	if _, err := New(WithOrderer(dropping)).Generate(2); !errors.Is(err, ErrContractViolation) {
		t.Fatalf("length mismatch must always fail, got %v", err)
	}

	if _, err := New(WithOrderer(mutating)).Generate(2); err != nil {
		t.Fatalf("unchecked generator should accept same-length output, got %v", err)
	}
	if _, err := New(WithOrderer(mutating), WithContractChecks(true)).Generate(2); !errors.Is(err, ErrContractViolation) {
		t.Fatalf("expected ErrContractViolation, got %v", err)
	}
}

func TestContractChecks_RejectReorderingFormatter(t *testing.T) {
	reordering := format.Func(func(lines fragment.Sequence) string {
		out := lines.Clone()
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
		return strings.Join(out.Strings(), " / ")
	})

	g := New(WithFormatter(reordering), WithContractChecks(true))
	if _, err := g.Generate(3); !errors.Is(err, ErrContractViolation) {
		t.Fatalf("expected ErrContractViolation, got %v", err)
	}

	checked := New(WithOrderer(order.NewShuffle()), WithFormatter(format.NewDuplicate()), WithContractChecks(true))
	if _, err := checked.Generate(5); err != nil {
		t.Fatalf("built-in strategies must pass contract checks: %v", err)
	}
}

func TestTemplateCarrier(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	inline, err := NewTemplateCarrier(engine, "Behold {{ phrase|safe }}!", nil)
	if err != nil {
		t.Fatalf("carrier: %v", err)
	}
	got, err := New(WithCarrier(inline)).Generate(1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "Behold the dog that worried!" {
		t.Fatalf("unexpected output %q", got)
	}

	named, err := NewTemplateCarrier(engine, gotemplate.TemplateAttributed, map[string]any{"closing": "quoth the cow"})
	if err != nil {
		t.Fatalf("carrier: %v", err)
	}
	got, err = New(WithCarrier(named)).Generate(1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "the dog that worried, quoth the cow." {
		t.Fatalf("unexpected output %q", got)
	}

	sentence, err := NewTemplateCarrier(engine, gotemplate.TemplateSentence, nil)
	if err != nil {
		t.Fatalf("carrier: %v", err)
	}
	viaTemplate, err := New(WithCarrier(sentence)).Generate(4)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	viaDefault, _ := New().Generate(4)
	if viaTemplate != viaDefault {
		t.Fatalf("sentence template diverged from default carrier\n tpl: %q\n def: %q", viaTemplate, viaDefault)
	}
}

func TestNewTemplateCarrier_Validation(t *testing.T) {
	if _, err := NewTemplateCarrier(nil, "x", nil); err == nil {
		t.Fatalf("expected engine error")
	}
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	if _, err := NewTemplateCarrier(engine, "  ", nil); err == nil {
		t.Fatalf("expected template error")
	}
}

func TestCarrierErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	g := New(WithCarrier(CarrierFunc(func(string) (string, error) { return "", boom })))
	if _, err := g.Generate(1); !errors.Is(err, boom) {
		t.Fatalf("expected carrier error, got %v", err)
	}
}

func TestGenerate_LogsAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	g := New(WithLogger(zap.New(core)), WithFormatter(format.NewDuplicate()))

	if _, err := g.Generate(3); err != nil {
		t.Fatalf("generate: %v", err)
	}

	entries := logs.FilterMessage("poem generated").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["count"] != int64(3) || fields["size"] != int64(12) {
		t.Fatalf("unexpected fields %v", fields)
	}
	if fields["formatter"] != "format.Duplicate" || fields["orderer"] != "order.Identity" {
		t.Fatalf("unexpected strategy fields %v", fields)
	}
}

func TestGenerate_ConcurrentCalls(t *testing.T) {
	g := New(WithOrderer(order.NewShuffle(order.WithSeed(3))), WithFormatter(format.NewDuplicate()))

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if _, err := g.Generate(n % (fragment.HouseSize + 1)); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent generate: %v", err)
	}
}

func TestMustGenerate(t *testing.T) {
	if got := New().MustGenerate(0); got != "This is ." {
		t.Fatalf("unexpected output %q", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	New().MustGenerate(13)
}

type fixedOrderer fragment.Sequence

func (f fixedOrderer) Order(fragment.Sequence) fragment.Sequence {
	return fragment.Sequence(f).Clone()
}
