package object

import "testing"

// A held trigger fires on frames 1, 11, 21, ... with exactly
// ShipReloadTime frames between shots.
func TestShip_HeldTriggerSpacesShotsExactly(t *testing.T) {
	ll := NewLaserList(SoundShot)
	s := NewShip(700, 400, ll, 15)
	s.Firing = true
	ctx := testCtx()

	fired := make([]int, 0, 4)
	for frame := 1; frame <= 31; frame++ {
		before := ll.Len()
		s.Update(ctx)
		if ll.Len() > before {
			fired = append(fired, frame)
		}
	}

	want := []int{1, 11, 21, 31}
	if len(fired) != len(want) {
		t.Fatalf("Expected shots on frames %v, got %v", want, fired)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Fatalf("Expected shots on frames %v, got %v", want, fired)
		}
	}
}

func TestShip_ReleasingTriggerResetsReload(t *testing.T) {
	ll := NewLaserList(SoundShot)
	s := NewShip(700, 400, ll, 15)
	ctx := testCtx()

	s.Firing = true
	s.Update(ctx)
	if ll.Len() != 1 {
		t.Fatalf("Expected immediate first shot, got %d lasers", ll.Len())
	}

	// Release mid-reload, then press again: fires on the very next frame
	// instead of waiting out the old counter.
	s.Firing = false
	for i := 0; i < 3; i++ {
		s.Update(ctx)
	}
	s.Firing = true
	s.Update(ctx)
	if ll.Len() != 2 {
		t.Errorf("Expected a shot immediately after re-press, got %d lasers", ll.Len())
	}
}

func TestShip_ClampsToExtendedBounds(t *testing.T) {
	s := NewShip(700, 400, NewLaserList(SoundShot), 15)
	s.Angle = 0
	s.Speed = ShipForwardRate
	ctx := testCtx()

	for i := 0; i < 600; i++ {
		s.Update(ctx)
	}

	half := s.Diagonal / 2
	if s.Y != testBounds.Height+half {
		t.Errorf("Expected ship held at y %v, got %v", testBounds.Height+half, s.Y)
	}

	s.Speed = -ShipForwardRate
	for i := 0; i < 600; i++ {
		s.Update(ctx)
	}
	if s.Y != -half {
		t.Errorf("Expected ship held at y %v, got %v", -half, s.Y)
	}
}

func TestShip_TurnRateAppliesPerSecond(t *testing.T) {
	s := NewShip(700, 400, NewLaserList(SoundShot), 15)
	s.TurnRate = ShipAngleRate
	ctx := testCtx()

	for i := 0; i < 30; i++ {
		s.Update(ctx)
	}
	if !roughly(s.Angle, 180) {
		t.Errorf("Expected 180 degrees after half a second at full turn rate, got %v", s.Angle)
	}
}

func TestShip_FiringWithoutLaserListPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic when firing with no laser list attached")
		}
	}()

	s := NewShip(700, 400, nil, 15)
	s.Firing = true
	s.Update(testCtx())
}

func TestExplosion_ProgressesThenRetires(t *testing.T) {
	e := NewExplosion(100, 100)
	if e.Progress() != 0 {
		t.Errorf("Expected progress 0 at creation, got %v", e.Progress())
	}

	frames := 0
	for e.Alive() {
		e.Update(testCtx())
		frames++
		if frames > 1000 {
			t.Fatal("Explosion never retired")
		}
	}
	if frames != explosionFrames {
		t.Errorf("Expected retirement after %d frames, got %d", explosionFrames, frames)
	}
}
