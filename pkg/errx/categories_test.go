package errx

import (
	"errors"
	"testing"
)

func TestCategories_Helpers(t *testing.T) {
	cause := errors.New("cause")
	cases := []struct {
		name string
		err  *Error
		code string
		desc string
	}{
		{"uncaught", Uncaught("m"), CodeUncaught, DescUncaught},
		{"rethrow", Rethrow("m"), CodeRethrow, DescRethrow},
		{"allocation", Allocation("m"), CodeAllocation, DescAllocation},
		{"wrap allocation", WrapAllocation("m", cause), CodeAllocation, DescAllocation},
		{"terminate", Terminate("m"), CodeTerminate, DescTerminate},
		{"scenario", Scenario("m"), CodeScenario, DescScenario},
		{"wrap scenario", WrapScenario("m", cause), CodeScenario, DescScenario},
		{"cli", CLI("m"), CodeCLI, DescCLI},
		{"wrap cli", WrapCLI("m", cause), CodeCLI, DescCLI},
		{"config", Config("m"), CodeConfig, DescConfig},
		{"wrap config", WrapConfig("m", cause), CodeConfig, DescConfig},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code() != tc.code {
				t.Errorf("Code() = %q, want %q", tc.err.Code(), tc.code)
			}
			if tc.err.Description() != tc.desc {
				t.Errorf("Description() = %q, want %q", tc.err.Description(), tc.desc)
			}
			if !IsValidCode(tc.err.Code()) {
				t.Errorf("IsValidCode(%q) = false, want true", tc.err.Code())
			}
		})
	}
}

func TestCategories_WrapKeepsCause(t *testing.T) {
	cause := errors.New("cause")
	err := WrapAllocation("test", cause)

	if err.Cause() != cause {
		t.Errorf("Cause() = %v, want %v", err.Cause(), cause)
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}
}

func TestCategories_CreateByCode(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := CreateByCode(CodeScenario, DescScenario, "test", nil)
		if err.Code() != CodeScenario {
			t.Errorf("Code() = %q, want %q", err.Code(), CodeScenario)
		}
		if err.Cause() != nil {
			t.Errorf("Cause() = %v, want nil", err.Cause())
		}
	})
	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("cause")
		err := CreateByCode(CodeScenario, DescScenario, "test", cause)
		if err.Cause() != cause {
			t.Errorf("Cause() = %v, want %v", err.Cause(), cause)
		}
	})
}

func TestCategories_FromSentinel(t *testing.T) {
	sentinel := errors.New("sentinel")

	t.Run("known sentinel", func(t *testing.T) {
		lookup := func(error) (string, string) { return CodeConfig, DescConfig }
		err := FromSentinel(sentinel, lookup, "test", nil)
		if err.Code() != CodeConfig {
			t.Errorf("Code() = %q, want %q", err.Code(), CodeConfig)
		}
		if !errors.Is(err, sentinel) {
			t.Errorf("errors.Is(err, sentinel) = false, want true")
		}
	})
	t.Run("unknown sentinel falls back to CLI", func(t *testing.T) {
		lookup := func(error) (string, string) { return "", "" }
		err := FromSentinel(sentinel, lookup, "test", nil)
		if err.Code() != CodeCLI {
			t.Errorf("Code() = %q, want %q", err.Code(), CodeCLI)
		}
	})
}
