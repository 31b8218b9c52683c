package runner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestVariables_OrderAndRebind(t *testing.T) {
	vars := &Variables{}
	vars.Set("b", "1")
	vars.Set("a", "2")
	vars.Set("b", "3")

	if diff := cmp.Diff([]string{"b", "a"}, vars.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if v, _ := vars.Get("b"); v != "3" {
		t.Errorf("Get(b) = %q, want 3", v)
	}
	if _, ok := vars.Get("missing"); ok {
		t.Error("Get(missing) should report absent")
	}
}

func TestVariables_MergeOtherWins(t *testing.T) {
	base := NewVariables("author", "Jane", "license", "GPL")
	base.Merge(NewVariables("license", "MIT", "year", "2024"))

	want := map[string]string{"author": "Jane", "license": "MIT", "year": "2024"}
	if diff := cmp.Diff(want, base.Map()); diff != "" {
		t.Errorf("Map() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"author", "license", "year"}, base.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestVariables_NilReceiver(t *testing.T) {
	var vars *Variables
	if vars.Len() != 0 || vars.Keys() != nil || len(vars.Map()) != 0 {
		t.Error("nil Variables should behave as empty")
	}
	if clone := vars.Clone(); clone == nil || clone.Len() != 0 {
		t.Error("Clone() of nil should be an empty mapping")
	}
}

func TestSpec_WithHelpersDoNotMutate(t *testing.T) {
	base := Spec{Subcommand: SubcommandFile, Variables: NewVariables("a", "1")}

	derived := base.
		WithSubcommand(SubcommandProject).
		WithOutputMode(OutputDryRun).
		WithOutputPath("out").
		WithTemplateName("tpl").
		WithVariable("b", "2").
		WithAssertEmpty(true)

	if base.Subcommand != SubcommandFile || base.OutputPath != "" || base.TemplateName != "" || base.AssertEmpty {
		t.Errorf("base spec was mutated: %+v", base)
	}
	if base.Variables.Len() != 1 {
		t.Errorf("base variables were mutated: %v", base.Variables.Map())
	}
	if derived.Variables.Len() != 2 || derived.Subcommand != SubcommandProject || !derived.AssertEmpty {
		t.Errorf("derived spec missing changes: %+v", derived)
	}

	vars := NewVariables("x", "1")
	withVars := base.WithVariables(vars)
	vars.Set("y", "2")
	if withVars.Variables.Len() != 1 {
		t.Error("WithVariables should copy the mapping")
	}
}

func TestSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantErr bool
	}{
		{name: "plain file spec", spec: Spec{Subcommand: SubcommandFile, Variables: NewVariables("a", "x=y")}},
		{name: "list ignores variables", spec: Spec{Subcommand: SubcommandList, Variables: NewVariables("", "")}},
		{name: "empty key", spec: Spec{Subcommand: SubcommandFile, Variables: NewVariables("", "v")}, wantErr: true},
		{name: "key with delimiter", spec: Spec{Subcommand: SubcommandFile, Variables: NewVariables("a=b", "v")}, wantErr: true},
		{name: "unknown subcommand", spec: Spec{Subcommand: Subcommand(42)}, wantErr: true},
		{name: "unknown output mode", spec: Spec{Subcommand: SubcommandProject, OutputMode: OutputMode(9)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() expected error but got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}
