package corpus

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dendrascience/crosshash/crosshash"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/uuid"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// maxListLen bounds the length of random arrays.
	maxListLen = 20

	// maxCombinations bounds the members of a random object.
	maxCombinations = 5
)

// Generator produces random JSON trees. Two generators with the same
// config and a non-zero seed produce the same trees.
type Generator struct {
	cfg  GeneratorConfig
	seed uint64
	src  *rand.ChaCha8
	rng  *rand.Rand
}

// NewGenerator returns a Generator for cfg. A zero cfg.Seed is replaced by
// a time based seed, available from Seed.
func NewGenerator(cfg GeneratorConfig) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	for seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	src := rand.NewChaCha8(key)
	return &Generator{cfg: cfg, seed: seed, src: src, rng: rand.New(src)}, nil
}

// Seed returns the seed the generator was started from.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// RandomString returns up to MaxStrLen letters and digits.
func (g *Generator) RandomString() crosshash.String {
	n := g.rng.IntN(g.cfg.MaxStrLen + 1)
	var sb strings.Builder
	sb.Grow(n)
	for range n {
		sb.WriteByte(alphabet[g.rng.IntN(len(alphabet))])
	}
	return crosshash.String(sb.String())
}

// RandomInt returns an integer in [1, MaxNumber].
func (g *Generator) RandomInt() crosshash.Number {
	return crosshash.Int(1 + g.rng.Int64N(g.cfg.MaxNumber))
}

// RandomFloat returns a double in [-MaxNumber, MaxNumber].
func (g *Generator) RandomFloat() crosshash.Number {
	m := float64(g.cfg.MaxNumber)
	return crosshash.Float(-m + 2*m*g.rng.Float64())
}

func (g *Generator) RandomBool() crosshash.Bool {
	return crosshash.Bool(g.rng.IntN(2) == 1)
}

// RandomList returns up to 20 random scalars.
func (g *Generator) RandomList() crosshash.Array {
	arr := make(crosshash.Array, g.rng.IntN(maxListLen+1))
	for i := range arr {
		arr[i] = g.scalar()
	}
	return arr
}

func (g *Generator) scalar() crosshash.Value {
	switch g.rng.IntN(4) {
	case 0:
		return g.RandomString()
	case 1:
		return g.RandomInt()
	case 2:
		return g.RandomBool()
	default:
		return g.RandomFloat()
	}
}

// leaf picks a scalar or a list of scalars.
func (g *Generator) leaf() crosshash.Value {
	if g.rng.IntN(5) == 4 {
		return g.RandomList()
	}
	return g.scalar()
}

func (g *Generator) key() string {
	if g.cfg.UUIDKeys {
		if id, err := uuid.NewRandomFromReader(g.src); err == nil {
			return id.String()
		}
	}
	return string(g.RandomString())
}

// RandomObject returns an object at most maxDepth levels deep. Each level
// holds up to min(maxHeight², 5) members; below the top, depth and height
// shrink to a random value smaller than the parent's.
func (g *Generator) RandomObject(maxDepth, maxHeight int) crosshash.Object {
	n := min(maxHeight*maxHeight, maxCombinations)
	obj := make(crosshash.Object, n)
	for range n {
		k := g.key()
		if maxDepth > 1 && maxHeight > 1 {
			obj[k] = g.RandomObject(1+g.rng.IntN(maxDepth-1), 1+g.rng.IntN(maxHeight-1))
		} else {
			obj[k] = g.leaf()
		}
	}
	return obj
}

// Value returns one random top-level object.
func (g *Generator) Value() crosshash.Object {
	return g.RandomObject(1+g.rng.IntN(g.cfg.MaxDepth), 1+g.rng.IntN(g.cfg.MaxHeight))
}

// Render writes v as indented JSON text with object members in random
// order, HTML characters escaped and integral numbers sometimes written
// with a ".0" fraction, so that the text differs from the canonical form.
func (g *Generator) Render(v crosshash.Value) (string, error) {
	var buf bytes.Buffer
	enc := jsontext.NewEncoder(&buf, jsontext.WithIndent("  "), jsontext.EscapeForHTML(true))
	if err := g.render(enc, v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func (g *Generator) render(enc *jsontext.Encoder, v crosshash.Value) error {
	switch v := v.(type) {
	case nil, crosshash.Null:
		return enc.WriteToken(jsontext.Null)
	case crosshash.Bool:
		return enc.WriteToken(jsontext.Bool(bool(v)))
	case crosshash.String:
		return enc.WriteToken(jsontext.String(string(v)))
	case crosshash.Number:
		if i, ok := v.Int64(); ok {
			if g.rng.IntN(2) == 0 {
				return enc.WriteValue(jsontext.Value(strconv.FormatInt(i, 10) + ".0"))
			}
			return enc.WriteToken(jsontext.Int(i))
		}
		return enc.WriteToken(jsontext.Float(v.Float64()))
	case crosshash.Array:
		if err := enc.WriteToken(jsontext.BeginArray); err != nil {
			return err
		}
		for _, item := range v {
			if err := g.render(enc, item); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndArray)
	case crosshash.Object:
		if err := enc.WriteToken(jsontext.BeginObject); err != nil {
			return err
		}
		keys := slices.Sorted(maps.Keys(v))
		g.rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
		for _, k := range keys {
			if err := enc.WriteToken(jsontext.String(k)); err != nil {
				return err
			}
			if err := g.render(enc, v[k]); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndObject)
	default:
		return fmt.Errorf("unexpected value %T", v)
	}
}

// Cases generates NumCases random cases named random-00000, random-00001
// and so on.
func (g *Generator) Cases() ([]Case, error) {
	cases := make([]Case, 0, g.cfg.NumCases)
	for i := range g.cfg.NumCases {
		input, err := g.Render(g.Value())
		if err != nil {
			return nil, err
		}
		c, err := NewCase(fmt.Sprintf("random-%05d", i), input)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}
