package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

const (
	helperEnv     = "TPLCTL_HELPER_PROCESS"
	helperModeEnv = "TPLCTL_HELPER_MODE"
)

// TestHelperProcess is not a real test. It stands in for devinit when the
// test binary is re-executed by helperInvoker.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}

	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}

	switch os.Getenv(helperModeEnv) {
	case "echo":
		fmt.Fprint(os.Stdout, strings.Join(args, "\n"))
		fmt.Fprint(os.Stderr, "note: rendered")
		os.Exit(0)
	case "no-config":
		fmt.Fprint(os.Stderr, "No configuration file found - validate your devinit installation or use --config\n")
		os.Exit(2)
	case "unknown-template":
		fmt.Fprint(os.Stderr, "No template was found with id missing\n")
		os.Exit(4)
	case "silent-failure":
		os.Exit(3)
	case "hang":
		time.Sleep(10 * time.Second)
		os.Exit(0)
	}
	os.Exit(0)
}

// helperInvoker returns an invoker that runs TestHelperProcess in mode and
// counts how many processes it creates.
func helperInvoker(mode string, spawned *int) *ProcessInvoker {
	return &ProcessInvoker{
		LookPath: func(string) (string, error) { return "/usr/bin/devinit", nil },
		CommandContext: func(ctx context.Context, name string, args ...string) *exec.Cmd {
			*spawned++
			cs := append([]string{"-test.run=TestHelperProcess", "--"}, args...)
			cmd := exec.CommandContext(ctx, os.Args[0], cs...)
			cmd.Env = append(os.Environ(), helperEnv+"=1", helperModeEnv+"="+mode)
			return cmd
		},
	}
}

func TestProcessInvoker_Success(t *testing.T) {
	var spawned int
	inv := helperInvoker("echo", &spawned)

	out, err := inv.Invoke(context.Background(), "", []string{"--parsable", "list"})
	if err != nil {
		t.Fatalf("Invoke() unexpected error: %v", err)
	}
	if spawned != 1 {
		t.Errorf("spawned %d processes, want 1", spawned)
	}
	if out.Stdout != "--parsable\nlist" {
		t.Errorf("Stdout = %q", out.Stdout)
	}
	if out.Stderr != "note: rendered" {
		t.Errorf("Stderr = %q", out.Stderr)
	}
	if out.Command != "/usr/bin/devinit --parsable list" {
		t.Errorf("Command = %q", out.Command)
	}
}

func TestProcessInvoker_Failures(t *testing.T) {
	tests := []struct {
		name       string
		mode       string
		wantType   RunnerErrorType
		wantExit   int
		wantSubstr string
	}{
		{
			name:       "missing devinitrc",
			mode:       "no-config",
			wantType:   ConfigNotFound,
			wantExit:   2,
			wantSubstr: "No configuration file found",
		},
		{
			name:       "unknown template",
			mode:       "unknown-template",
			wantType:   ProcessFailed,
			wantExit:   4,
			wantSubstr: "No template was found with id missing",
		},
		{
			name:       "empty stderr falls back to exit status",
			mode:       "silent-failure",
			wantType:   ProcessFailed,
			wantExit:   3,
			wantSubstr: "exit status 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var spawned int
			_, err := helperInvoker(tt.mode, &spawned).Invoke(context.Background(), "", []string{"file"})
			if err == nil {
				t.Fatal("Invoke() expected error but got none")
			}

			var re *RunnerError
			if !errors.As(err, &re) {
				t.Fatalf("error %T is not a *RunnerError", err)
			}
			if re.Type != tt.wantType {
				t.Errorf("Type = %s, want %s", re.Type, tt.wantType)
			}
			if re.ExitCode != tt.wantExit {
				t.Errorf("ExitCode = %d, want %d", re.ExitCode, tt.wantExit)
			}
			if !strings.Contains(re.Error(), tt.wantSubstr) {
				t.Errorf("Error() = %q, want substring %q", re.Error(), tt.wantSubstr)
			}
			if re.Command == "" {
				t.Error("Command should be recorded")
			}
		})
	}
}

func TestProcessInvoker_Timeout(t *testing.T) {
	var spawned int
	inv := helperInvoker("hang", &spawned)
	inv.Timeout = 200 * time.Millisecond

	_, err := inv.Invoke(context.Background(), "", []string{"list"})
	if !IsType(err, Timeout) {
		t.Fatalf("Invoke() error = %v, want Timeout", err)
	}
}

func TestProcessInvoker_ContextCancelled(t *testing.T) {
	var spawned int
	inv := helperInvoker("hang", &spawned)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	_, err := inv.Invoke(ctx, "", []string{"list"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Invoke() error = %v, want context.Canceled", err)
	}
}

func TestProcessInvoker_DiscoveryFailureSpawnsNothing(t *testing.T) {
	var spawned int
	inv := helperInvoker("echo", &spawned)
	inv.LookPath = func(string) (string, error) { return "", exec.ErrNotFound }

	_, err := inv.Invoke(context.Background(), "", []string{"--parsable", "list"})
	if !IsType(err, ExecutableNotFound) {
		t.Fatalf("Invoke() error = %v, want ExecutableNotFound", err)
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("error should wrap exec.ErrNotFound: %v", err)
	}
	if spawned != 0 {
		t.Errorf("spawned %d processes, want 0", spawned)
	}
}

func TestProcessInvoker_ExplicitPathSkipsLookup(t *testing.T) {
	var spawned int
	inv := helperInvoker("echo", &spawned)
	var looked bool
	inv.LookPath = func(string) (string, error) {
		looked = true
		return "", exec.ErrNotFound
	}

	out, err := inv.Invoke(context.Background(), "/opt/devinit/bin/devinit", []string{"list"})
	if err != nil {
		t.Fatalf("Invoke() unexpected error: %v", err)
	}
	if looked {
		t.Error("LookPath should not be called for an explicit path")
	}
	if !strings.HasPrefix(out.Command, "/opt/devinit/bin/devinit ") {
		t.Errorf("Command = %q", out.Command)
	}
}

func TestProcessInvoker_UnstartableExplicitPath(t *testing.T) {
	inv := NewProcessInvoker(0)

	_, err := inv.Invoke(context.Background(), t.TempDir()+"/no-such-devinit", []string{"list"})
	if !IsType(err, ExecutableNotFound) {
		t.Fatalf("Invoke() error = %v, want ExecutableNotFound", err)
	}
}

type recordingInvoker struct {
	calls [][]string
}

func (r *recordingInvoker) Invoke(_ context.Context, _ string, args []string) (*Outcome, error) {
	r.calls = append(r.calls, args)
	return &Outcome{}, nil
}

func TestRun_ValidatesBeforeInvoking(t *testing.T) {
	rec := &recordingInvoker{}
	spec := Spec{Subcommand: SubcommandFile, TemplateName: "t", Variables: NewVariables("a=b", "c")}

	if _, err := Run(context.Background(), rec, spec); err == nil {
		t.Fatal("Run() expected validation error")
	}
	if len(rec.calls) != 0 {
		t.Errorf("invoker called %d times, want 0", len(rec.calls))
	}

	spec.Variables = NewVariables("a", "b")
	if _, err := Run(context.Background(), rec, spec); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if len(rec.calls) != 1 {
		t.Errorf("invoker called %d times, want 1", len(rec.calls))
	}
}
