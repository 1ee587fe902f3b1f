package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dendrascience/crosshash/corpus"
)

func TestSeedAndVerify(t *testing.T) {
	tmpDir := t.TempDir()
	output := filepath.Join(tmpDir, "corpus")
	bundle := filepath.Join(tmpDir, "corpus.zip")

	out, err := execute(t, "", "seed", "-o", output, "--count", "5", "--seed", "7", "--bundle", bundle, "-v")
	if err != nil {
		t.Fatalf("seed error = %v", err)
	}
	want := len(corpus.AllCases()) + 5
	for _, s := range []string{"Seed: 7", "Bundle written to", "(seed 7)"} {
		if !strings.Contains(out, s) {
			t.Errorf("seed output missing %q:\n%s", s, out)
		}
	}

	src, err := corpus.Open(output)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if src.Manifest().Len() != want {
		t.Errorf("manifest has %d entries, want %d", src.Manifest().Len(), want)
	}
	if src.Metadata().Seed != 7 {
		t.Errorf("metadata seed = %d, want 7", src.Metadata().Seed)
	}
	src.Close()

	for _, args := range [][]string{
		{"verify", output},
		{"verify", "--path", bundle, "-v"},
	} {
		out, err := execute(t, "", args...)
		if err != nil {
			t.Errorf("%v error = %v\n%s", args, err, out)
			continue
		}
		if !strings.Contains(out, "Problems: 0") {
			t.Errorf("%v output:\n%s", args, out)
		}
	}

	m, err := corpus.LoadManifest(output)
	if err != nil {
		t.Fatal(err)
	}
	out, err = execute(t, "", "verify", "-v", bundle)
	if err != nil {
		t.Fatalf("verify error = %v", err)
	}
	wantFiles := fmt.Sprintf("Bundle holds %d files for %d vector files", m.GetTargetFileCount()+2, m.GetTargetFileCount())
	if !strings.Contains(out, wantFiles) {
		t.Errorf("verify -v output missing %q:\n%s", wantFiles, out)
	}
}

func TestSeedSubbuckets(t *testing.T) {
	output := filepath.Join(t.TempDir(), "corpus")
	if _, err := execute(t, "", "seed", "-o", output, "-c", "10", "-s", "3", "--subbuckets", "4"); err != nil {
		t.Fatalf("seed error = %v", err)
	}
	m, err := corpus.LoadManifest(output)
	if err != nil {
		t.Fatal(err)
	}
	for e := range m.Iterate {
		if e.Target == "" {
			continue
		}
		dir, err := corpus.DirFromHashPath(e.Target)
		if err != nil {
			t.Fatal(err)
		}
		if sub := path.Base(dir); sub < "00000" || sub > "00003" {
			t.Errorf("%s: subbucket %s outside 0-3", e.Name, sub)
		}
	}
	if _, err := execute(t, "", "verify", output); err != nil {
		t.Errorf("verify error = %v", err)
	}
}

func TestSeedReproducible(t *testing.T) {
	tmpDir := t.TempDir()
	inputs := make([][]string, 2)
	for i := range inputs {
		output := filepath.Join(tmpDir, string(rune('a'+i)))
		if _, err := execute(t, "", "seed", "-o", output, "-c", "3", "-s", "99"); err != nil {
			t.Fatalf("seed error = %v", err)
		}
		m, err := corpus.LoadManifest(output)
		if err != nil {
			t.Fatalf("LoadManifest() error = %v", err)
		}
		for e := range m.Iterate {
			inputs[i] = append(inputs[i], e.Name+"="+e.Input)
		}
	}
	if strings.Join(inputs[0], "\n") != strings.Join(inputs[1], "\n") {
		t.Error("same seed produced different corpora")
	}
}

func TestSeedConfig(t *testing.T) {
	tmpDir := t.TempDir()
	config := filepath.Join(tmpDir, "gen.yaml")
	os.WriteFile(config, []byte("num_cases: 2\nmax_depth: 2\nuuid_keys: false\nseed: 5\n"), 0o644)
	output := filepath.Join(tmpDir, "corpus")

	if _, err := execute(t, "", "seed", "-o", output, "--config", config); err != nil {
		t.Fatalf("seed error = %v", err)
	}
	m, err := corpus.LoadManifest(output)
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	if m.Len() != len(corpus.AllCases())+2 {
		t.Errorf("manifest has %d entries", m.Len())
	}

	// --count overrides the config file
	output = filepath.Join(tmpDir, "override")
	if _, err := execute(t, "", "seed", "-o", output, "--config", config, "--count", "0"); err != nil {
		t.Fatalf("seed error = %v", err)
	}
	if m, _ := corpus.LoadManifest(output); m.Len() != len(corpus.AllCases()) {
		t.Errorf("manifest has %d entries, want only the fixed cases", m.Len())
	}

	os.WriteFile(config, []byte("num_cases: 2\nbogus: 1\n"), 0o644)
	_, err = execute(t, "", "seed", "-o", filepath.Join(tmpDir, "bad"), "--config", config)
	if !errors.Is(err, corpus.ErrInvalidConfig) {
		t.Errorf("seed error = %v, want ErrInvalidConfig", err)
	}
}

func TestSeedRequiresOutput(t *testing.T) {
	if _, err := execute(t, "", "seed"); err == nil {
		t.Error("seed without --output succeeded")
	}
}

func TestVerifyReportsProblems(t *testing.T) {
	output := filepath.Join(t.TempDir(), "corpus")
	if _, err := execute(t, "", "seed", "-o", output, "-c", "0"); err != nil {
		t.Fatalf("seed error = %v", err)
	}
	m, err := corpus.LoadManifest(output)
	if err != nil {
		t.Fatal(err)
	}
	m.Sort()
	ascii, _ := m.Lookup("ascii")
	os.WriteFile(filepath.Join(output, filepath.FromSlash(ascii.Target)), []byte(`"BBB"`), 0o644)

	out, err := execute(t, "", "verify", output)
	if !errors.Is(err, ErrVerifyFailed) {
		t.Fatalf("verify error = %v, want ErrVerifyFailed", err)
	}
	if !strings.Contains(out, "  - ascii: ") || !strings.Contains(out, "Problems: 1") {
		t.Errorf("verify output:\n%s", out)
	}
}

func TestVerifyArguments(t *testing.T) {
	if _, err := execute(t, "", "verify"); err == nil {
		t.Error("verify without a path succeeded")
	}
	if _, err := execute(t, "", "verify", t.TempDir()); !errors.Is(err, corpus.ErrMissingManifest) {
		t.Errorf("verify error = %v, want ErrMissingManifest", err)
	}
}

func TestCasesCmd(t *testing.T) {
	out, err := execute(t, "", "cases")
	if err != nil {
		t.Fatalf("cases error = %v", err)
	}
	var cases []corpus.Case
	if err := json.Unmarshal([]byte(out), &cases); err != nil {
		t.Fatalf("cases output is not JSON: %v", err)
	}
	if len(cases) != len(corpus.AllCases()) {
		t.Errorf("cases printed %d cases, want %d", len(cases), len(corpus.AllCases()))
	}
	for i, c := range cases {
		if c != corpus.AllCases()[i] {
			t.Errorf("case %d = %+v, want %+v", i, c, corpus.AllCases()[i])
		}
	}

	out, err = execute(t, "", "cases", "--unsafe")
	if err != nil {
		t.Fatalf("cases --unsafe error = %v", err)
	}
	cases = nil
	json.Unmarshal([]byte(out), &cases)
	for _, c := range cases {
		if !c.Failing() {
			t.Errorf("cases --unsafe printed %s", c.Name)
		}
	}
}

func TestCasesFromCorpus(t *testing.T) {
	tmpDir := t.TempDir()
	output := filepath.Join(tmpDir, "corpus")
	bundle := filepath.Join(tmpDir, "corpus.zip")
	if _, err := execute(t, "", "seed", "-o", output, "-c", "4", "-s", "11", "-b", bundle); err != nil {
		t.Fatalf("seed error = %v", err)
	}

	for _, from := range []string{output, bundle} {
		out, err := execute(t, "", "cases", "--from", from)
		if err != nil {
			t.Fatalf("cases --from %s error = %v", from, err)
		}
		var cases []corpus.Case
		if err := json.Unmarshal([]byte(out), &cases); err != nil {
			t.Fatalf("cases output is not JSON: %v", err)
		}
		if len(cases) != len(corpus.AllCases())+4 {
			t.Errorf("cases --from %s printed %d cases", from, len(cases))
		}
		for _, c := range cases {
			want, err := corpus.NewCase(c.Name, c.Input)
			if err != nil {
				t.Fatalf("%s: NewCase() error = %v", c.Name, err)
			}
			if c != want {
				t.Errorf("%s: printed %+v, want %+v", c.Name, c, want)
			}
		}
	}

	out, err := execute(t, "", "cases", "--from", output, "one", "unsafe-int")
	if err != nil {
		t.Fatalf("cases error = %v", err)
	}
	var cases []corpus.Case
	json.Unmarshal([]byte(out), &cases)
	if len(cases) != 2 || cases[0].Canonical != "1" || cases[1].Error == "" {
		t.Errorf("cases one unsafe-int = %+v", cases)
	}
}

func TestCasesUnknownName(t *testing.T) {
	if _, err := execute(t, "", "cases", "nope"); !errors.Is(err, ErrUnknownCase) {
		t.Errorf("cases error = %v, want ErrUnknownCase", err)
	}
	out, err := execute(t, "", "cases", "zero", "arabic")
	if err != nil {
		t.Fatalf("cases error = %v", err)
	}
	var cases []corpus.Case
	json.Unmarshal([]byte(out), &cases)
	if len(cases) != 2 || cases[0].Name != "zero" || cases[1].Name != "arabic" {
		t.Errorf("cases zero arabic = %+v", cases)
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "crosshash version ") {
		t.Errorf("version output = %q", out)
	}

	out, err = execute(t, "", "version", "--json")
	if err != nil {
		t.Fatalf("version --json error = %v", err)
	}
	var info struct {
		Package string `json:"package"`
	}
	if err := json.Unmarshal([]byte(out), &info); err != nil || info.Package != "crosshash" {
		t.Errorf("version --json output = %q (%v)", out, err)
	}
}
