package cli

import (
	"os"
	"testing"
	"time"

	"github.com/getmockd/tempoid/internal/entropy"
	"github.com/getmockd/tempoid/pkg/alphabet"
	"github.com/getmockd/tempoid/pkg/tempoid"
	"github.com/rogpeppe/go-internal/testscript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain lets testscript run the tempoid command in-process.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"tempoid": Main,
	}))
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			env.Setenv("XDG_CONFIG_HOME", env.WorkDir+"/.config")
			return nil
		},
	})
}

func numbersConfig(pad bool) tempoid.Config {
	return tempoid.Config{
		TimeLength:   4,
		RandomLength: 2,
		PadLeft:      pad,
		Alphabet:     alphabet.Numbers,
	}
}

func TestInspectID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		id         string
		pad        bool
		wantTime   string
		wantRandom string
		wantAt     time.Time
		wantErr    string
	}{
		{name: "padded", id: "123456", pad: true, wantTime: "1234", wantRandom: "56", wantAt: time.UnixMilli(1234)},
		{name: "zero time", id: "000099", pad: true, wantTime: "0000", wantRandom: "99", wantAt: time.UnixMilli(0)},
		{name: "unpadded short", id: "756", pad: false, wantTime: "7", wantRandom: "56", wantAt: time.UnixMilli(7)},
		{name: "padded wrong length", id: "12345", pad: true, wantErr: "length 5, expected 6"},
		{name: "unpadded too long", id: "1234567", pad: false, wantErr: "length 7, expected 2 to 6"},
		{name: "foreign character", id: "12x456", pad: true, wantErr: "character 'x' is not in the alphabet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := inspectID(tt.id, numbersConfig(tt.pad))
			if tt.wantErr != "" {
				assert.False(t, res.Valid)
				assert.Equal(t, tt.wantErr, res.Problem)
				assert.Nil(t, res.Time)
				return
			}
			require.True(t, res.Valid, res.Problem)
			assert.Equal(t, tt.wantTime, res.TimePart)
			assert.Equal(t, tt.wantRandom, res.RandomPart)
			require.NotNil(t, res.Time)
			assert.True(t, tt.wantAt.Equal(*res.Time), "got %v", res.Time)
		})
	}
}

func TestInspectID_RandomOnly(t *testing.T) {
	t.Parallel()

	c := numbersConfig(true)
	c.TimeLength = 0
	res := inspectID("42", c)
	require.True(t, res.Valid)
	assert.Empty(t, res.TimePart)
	assert.Equal(t, "42", res.RandomPart)
	assert.Nil(t, res.Time)
}

func TestInspectID_GeneratedRoundTrip(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	c := tempoid.Config{
		TimeLength:   10,
		RandomLength: 12,
		PadLeft:      true,
		Alphabet:     alphabet.Lowercase,
		Time:         at,
		StartTime:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	id, err := tempoid.GenerateCustom(c)
	require.NoError(t, err)

	c.Time = time.Time{}
	res := inspectID(id.String(), c)
	require.True(t, res.Valid, res.Problem)
	require.NotNil(t, res.Time)
	assert.True(t, at.Equal(*res.Time), "got %v", res.Time)
}

func TestRunBench(t *testing.T) {
	t.Parallel()

	gen := tempoid.New(tempoid.WithByteSource(entropy.NewPool()))
	res, err := runBench(gen, tempoid.DefaultConfig(), 4, 250)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Workers)
	assert.Equal(t, 1000, res.Generated)
	assert.Zero(t, res.Duplicates)
	assert.Positive(t, res.PerSecond)
}

func TestRunBench_CountsDuplicates(t *testing.T) {
	t.Parallel()

	c := tempoid.Config{
		TimeLength: 4,
		PadLeft:    true,
		Alphabet:   alphabet.Numbers,
		Time:       time.UnixMilli(42),
	}
	res, err := runBench(tempoid.New(), c, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Generated)
	assert.Equal(t, 9, res.Duplicates)
}

func TestRunBench_PropagatesErrors(t *testing.T) {
	t.Parallel()

	_, err := runBench(tempoid.New(), tempoid.Config{Alphabet: "x"}, 3, 1)
	require.ErrorIs(t, err, alphabet.ErrInvalid)
}

func TestCatalogInfo(t *testing.T) {
	t.Parallel()

	infos := catalogInfo()
	require.Len(t, infos, len(alphabet.Names()))

	byName := make(map[string]alphabetInfo, len(infos))
	for _, info := range infos {
		byName[info.Name] = info
	}
	assert.Equal(t, alphabetInfo{
		Name:          "numbers",
		Size:          10,
		MaxTimeLength: 19,
		Sortable:      true,
		Characters:    alphabet.Numbers,
	}, byName["numbers"])
	assert.Equal(t, 10, byName["alphanumeric"].MaxTimeLength)
	assert.False(t, byName["alphanumeric"].Sortable)
	assert.True(t, byName["hex"].Sortable)
}

func TestDash(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-", dash(""))
	assert.Equal(t, "ab", dash("ab"))
}

func TestUnsortedBatch(t *testing.T) {
	t.Parallel()

	def := tempoid.DefaultConfig()
	assert.True(t, unsortedBatch(def, 2))
	assert.False(t, unsortedBatch(def, 1))

	noTime := def
	noTime.TimeLength = 0
	assert.False(t, unsortedBatch(noTime, 5))

	hex := def
	hex.Alphabet = alphabet.HexLower
	assert.False(t, unsortedBatch(hex, 5))
}
