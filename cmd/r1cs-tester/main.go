package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// jsonEntry mirrors the {constraint, signal, value} shape spec.md section 6
// specifies, with value as a stringified decimal integer (fr.Element has no
// native JSON decoding, so it round-trips through its canonical SetString
// the way ark_de does in the reference implementation).
type jsonEntry struct {
	Constraint int    `json:"constraint"`
	Signal     int    `json:"signal"`
	Value      string `json:"value"`
}

type r1csFixture struct {
	NumPublic      int         `json:"num_public"`
	NumVariables   int         `json:"num_variables"`
	NumConstraints int         `json:"num_constraints"`
	A              []jsonEntry `json:"a"`
	B              []jsonEntry `json:"b"`
	C              []jsonEntry `json:"c"`
	Witnesses      [][]string  `json:"witnesses"`
}

func decodeEntries(raw []jsonEntry) ([]SparseEntry, error) {
	out := make([]SparseEntry, len(raw))
	for i, e := range raw {
		var v fr.Element
		if _, err := v.SetString(e.Value); err != nil {
			return nil, fmt.Errorf("entry %d: invalid field element %q: %w", i, e.Value, err)
		}
		out[i] = SparseEntry{Constraint: e.Constraint, Signal: e.Signal, Value: v}
	}
	return out, nil
}

func decodeWitness(raw []string, numVariables int) ([]fr.Element, error) {
	if len(raw) == 0 || raw[0] != "1" {
		return nil, fmt.Errorf("witness[0] must be the constant 1")
	}
	if len(raw) > numVariables {
		return nil, fmt.Errorf("witness has %d entries, exceeds num_variables %d", len(raw), numVariables)
	}
	out := make([]fr.Element, numVariables)
	for i, s := range raw {
		if _, err := out[i].SetString(s); err != nil {
			return nil, fmt.Errorf("witness %d: invalid field element %q: %w", i, s, err)
		}
	}
	// Remaining entries (raw[len(raw):numVariables]) are implicitly zero,
	// matching the reference's `while witness.len() < num_variables { push(0) }`.
	return out, nil
}

func checkWitness(fixture r1csFixture, a, b, c []SparseEntry, witness []fr.Element) (failed int, err error) {
	az := MulLeft(a, fixture.NumConstraints, witness)
	bz := MulLeft(b, fixture.NumConstraints, witness)
	cz := MulLeft(c, fixture.NumConstraints, witness)

	for i := 0; i < fixture.NumConstraints; i++ {
		var lhs fr.Element
		lhs.Mul(&az[i], &bz[i])
		if !lhs.Equal(&cz[i]) {
			if failed < 5 {
				fmt.Printf("constraint %d failed\n", i)
			}
			failed++
		}
	}
	return failed, nil
}

func run(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	var fixture r1csFixture
	if err := json.NewDecoder(file).Decode(&fixture); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	fmt.Printf("num_public: %d\n", fixture.NumPublic)
	fmt.Printf("num_variables: %d\n", fixture.NumVariables)
	fmt.Printf("num_constraints: %d\n", fixture.NumConstraints)

	a, err := decodeEntries(fixture.A)
	if err != nil {
		return err
	}
	b, err := decodeEntries(fixture.B)
	if err != nil {
		return err
	}
	c, err := decodeEntries(fixture.C)
	if err != nil {
		return err
	}

	for wi, raw := range fixture.Witnesses {
		witness, err := decodeWitness(raw, fixture.NumVariables)
		if err != nil {
			return fmt.Errorf("witness %d: %w", wi, err)
		}
		fmt.Printf("verifying witness %d (len %d)...\n", wi, len(raw))
		failed, err := checkWitness(fixture, a, b, c, witness)
		if err != nil {
			return err
		}
		pct := 100.0 * float64(failed) / float64(fixture.NumConstraints)
		fmt.Printf("%.2f%% of constraints failed\n", pct)
	}
	return nil
}

func main() {
	path := flag.String("fixture", "", "path to an R1CS JSON fixture (num_public/num_variables/num_constraints/a/b/c/witnesses)")
	flag.Parse()
	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: r1cs-tester -fixture <path.json>")
		os.Exit(2)
	}
	if err := run(*path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
