// internal/cli/options_test.go
package cli

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		wantErr bool
		check   func(t *testing.T, o Options)
	}{
		{
			name: "minimal valid",
			argv: []string{"--dataset", "ds", "--analysis", "a.json"},
			check: func(t *testing.T, o Options) {
				if o.Format != FormatJSON {
					t.Errorf("default format = %q", o.Format)
				}
				if o.Output != "-" {
					t.Errorf("default output = %q", o.Output)
				}
			},
		},
		{
			name: "tsv format and flags",
			argv: []string{"-d", "ds", "-a", "-", "-f", "tsv", "--no-header", "-t", "4"},
			check: func(t *testing.T, o Options) {
				if o.Format != FormatTSV || !o.NoHeader || o.Threads != 4 {
					t.Errorf("parsed = %+v", o)
				}
			},
		},
		{
			name:    "missing dataset",
			argv:    []string{"--analysis", "a.json"},
			wantErr: true,
		},
		{
			name:    "missing analysis",
			argv:    []string{"--dataset", "ds"},
			wantErr: true,
		},
		{
			name:    "negative threads",
			argv:    []string{"-d", "ds", "-a", "a.json", "-t", "-1"},
			wantErr: true,
		},
		{
			name:    "unknown format rejected by choice tag",
			argv:    []string{"-d", "ds", "-a", "a.json", "-f", "xml"},
			wantErr: true,
		},
		{
			name: "help skips validation",
			argv: []string{"--help"},
			check: func(t *testing.T, o Options) {
				if !o.Help {
					t.Errorf("help not set")
				}
			},
		},
		{
			name: "version skips validation",
			argv: []string{"--version"},
			check: func(t *testing.T, o Options) {
				if !o.Version {
					t.Errorf("version not set")
				}
			},
		},
	}

	for _, tc := range tests {
		opt, err := Parse("privatemut", tc.argv)
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: err = %v, wantErr = %v", tc.name, err, tc.wantErr)
			continue
		}
		if err == nil && tc.check != nil {
			tc.check(t, opt)
		}
	}
}
