package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_KnownVerbs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want Command
	}{
		{"quit short", "q", Command{Kind: KindQuit}},
		{"quit long", "quit", Command{Kind: KindQuit}},
		{"monitor", "monitor", Command{Kind: KindEnterMonitor}},
		{"enable experiment", "enable experiment 7", Command{Kind: KindEnableExperiment, ExperimentID: 7, Arg: "7"}},
		{"motor inc", "motor inc 50", Command{Kind: KindMotorInc, Steps: 50, Arg: "50"}},
		{"motor inc negative", "motor inc -3", Command{Kind: KindMotorInc, Steps: -3, Arg: "-3"}},
		{"motor rot", "motor rot -45.0", Command{Kind: KindMotorRot, Degrees: -45.0, Arg: "-45.0"}},
		{"shader open", "shader open", Command{Kind: KindShaderOpen}},
		{"shader close", "shader close", Command{Kind: KindShaderClose}},
		{"compile", "compile", Command{Kind: KindCompile}},
		{"flash", "flash", Command{Kind: KindFlash}},
		{"empty", "", Command{Kind: KindEmpty}},
		{"blank", "   ", Command{Kind: KindEmpty}},
		{"extra whitespace", "  motor   inc   5 ", Command{Kind: KindMotorInc, Steps: 5, Arg: "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.raw))
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	raws := []string{
		"run",                     // unrecognized verb
		"Q",                       // verbs are case-sensitive
		"QUIT",
		"Monitor",
		"quit now",                // wrong arity
		"enable",                  // missing sub-verb
		"enable experiment",       // missing id
		"enable experiment seven", // non-numeric id
		"enable run 3",            // wrong sub-verb
		"motor",                   // missing sub-verb
		"motor inc",               // missing steps
		"motor inc fast",          // non-numeric steps
		"motor inc 1.5",           // steps must be an integer
		"motor rot much",          // non-numeric degrees
		"motor spin 5",            // unknown sub-verb
		"shader",                  // missing sub-verb
		"shader half",             // unknown sub-verb
		"shader open wide",        // wrong arity
		"compile all",             // wrong arity
		"flash twice",             // wrong arity
	}

	for _, raw := range raws {
		t.Run(raw, func(t *testing.T) {
			got := Parse(raw)
			assert.Equal(t, KindUnknown, got.Kind)
			assert.Equal(t, raw, got.Raw)
		})
	}
}
