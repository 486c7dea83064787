package wait

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestForState_ImmediateSuccess(t *testing.T) {
	attempts := 0
	check := func(_ context.Context) (bool, error) {
		attempts++
		return true, nil
	}

	ctx := context.Background()
	err := ForState(ctx, "cluster cluster-abc", "ACTIVE", check)

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got: %d", attempts)
	}
}

func TestForState_SuccessAfterPolling(t *testing.T) {
	attempts := 0
	check := func(_ context.Context) (bool, error) {
		attempts++
		return attempts >= 3, nil
	}

	ctx := context.Background()
	err := ForState(ctx, "hsm hsm-123", "ACTIVE", check, WithInterval(10*time.Millisecond))

	if err != nil {
		t.Errorf("Expected no error after polling, got: %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got: %d", attempts)
	}
}

func TestForState_Timeout(t *testing.T) {
	attempts := 0
	check := func(_ context.Context) (bool, error) {
		attempts++
		return false, nil
	}

	ctx := context.Background()
	err := ForState(ctx, "cluster cluster-abc", "UNINITIALIZED", check,
		WithInterval(time.Millisecond),
		WithMaxAttempts(4))

	if err == nil {
		t.Fatal("Expected timeout error, got nil")
	}
	if !IsTimeout(err) {
		t.Errorf("Expected timeout error, got: %v", err)
	}
	if attempts != 4 {
		t.Errorf("Expected 4 attempts, got: %d", attempts)
	}

	var te *TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("Expected *TimeoutError, got: %T", err)
	}
	if te.Attempts != 4 {
		t.Errorf("Expected 4 attempts recorded, got: %d", te.Attempts)
	}
	if te.Target != "UNINITIALIZED" {
		t.Errorf("Expected target UNINITIALIZED, got: %s", te.Target)
	}
}

func TestForState_CheckError(t *testing.T) {
	attempts := 0
	checkErr := errors.New("throttled")
	check := func(_ context.Context) (bool, error) {
		attempts++
		return false, checkErr
	}

	ctx := context.Background()
	err := ForState(ctx, "cluster cluster-abc", "ACTIVE", check, WithInterval(time.Millisecond))

	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !errors.Is(err, checkErr) {
		t.Errorf("Expected wrapped check error, got: %v", err)
	}
	if IsTimeout(err) {
		t.Error("Check error must not classify as timeout")
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt (no retry on check error), got: %d", attempts)
	}
}

func TestForState_ContextCancellation(t *testing.T) {
	attempts := 0
	check := func(_ context.Context) (bool, error) {
		attempts++
		return false, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := ForState(ctx, "hsm hsm-123", "ACTIVE", check, WithInterval(10*time.Millisecond))

	if err == nil {
		t.Fatal("Expected error due to context cancellation, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt before context check, got: %d", attempts)
	}
}

func TestIsTimeout_OtherError(t *testing.T) {
	if IsTimeout(errors.New("boom")) {
		t.Error("Expected plain error not to classify as timeout")
	}
	if IsTimeout(nil) {
		t.Error("Expected nil not to classify as timeout")
	}
}
