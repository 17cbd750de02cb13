package stage

import "testing"

func TestSortEnvelopeErrors_ByPipelineOrderThenMessage(t *testing.T) {
	env := Envelope{
		Errors: []Error{
			{Stage: DeactivateEnvironment, Message: "a"},
			{Stage: "custom", Message: "a"},
			{Stage: ActivateEnvironment, Message: "m2"},
			{Stage: LocateEnvironment, Message: "m9"},
			{Stage: ActivateEnvironment, Message: "m1"},
		},
	}
	SortEnvelopeErrors(&env)
	want := []Error{
		{Stage: LocateEnvironment, Message: "m9"},
		{Stage: ActivateEnvironment, Message: "m1"},
		{Stage: ActivateEnvironment, Message: "m2"},
		{Stage: DeactivateEnvironment, Message: "a"},
		{Stage: "custom", Message: "a"},
	}
	if len(env.Errors) != len(want) {
		t.Fatalf("unexpected count: %d", len(env.Errors))
	}
	for i := range want {
		if env.Errors[i] != want[i] {
			t.Fatalf("index %d mismatch: got=%+v want=%+v", i, env.Errors[i], want[i])
		}
	}
}

func TestRecordStep_SanitizesMessage(t *testing.T) {
	var env Envelope
	recordStep(&env, InitConda, 1, "  /x/conda.sh:\n   No such file\tor directory ")
	if len(env.Steps) != 1 || env.Steps[0].Error == nil {
		t.Fatalf("expected failed step: %+v", env.Steps)
	}
	if got := env.Errors[0].Message; got != "/x/conda.sh: No such file or directory" {
		t.Fatalf("unexpected message: %q", got)
	}
}
