package quectel_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/vjt/quectel-5g-tools/quectel"
)

// expectExchange queues one command/response round trip on the transport.
// Exchanges are strictly ordered: the modem is synchronous and only reads
// after writing a command.
func expectExchange(transport *quectel.MockTransport, cmd, response string) {
	gomock.InOrder(
		transport.EXPECT().Write([]byte(cmd+"\r")).Return(len(cmd)+1, nil),
		transport.EXPECT().Read(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
			return copy(p, response), nil
		}),
	)
}

// newTestModem builds a modem against a mock transport, expecting the
// construction-time AT and ATE0 exchanges.
func newTestModem(t *testing.T, ctrl *gomock.Controller) (*quectel.Modem, *quectel.MockTransport) {
	t.Helper()

	transport := quectel.NewMockTransport(ctrl)
	dialer := quectel.NewMockDialer(ctrl)

	dialer.EXPECT().Dial(gomock.Any()).Return(transport, nil)
	expectExchange(transport, "AT", "OK\r\n")
	expectExchange(transport, "ATE0", "OK\r\n")

	m, err := quectel.New(context.Background(), quectel.Config{Dialer: dialer})
	if err != nil {
		t.Fatalf("failed to create modem: %v", err)
	}
	return m, transport
}

func TestNew(t *testing.T) {
	t.Run("Requires a dialer", func(t *testing.T) {
		_, err := quectel.New(context.Background(), quectel.Config{})
		if !errors.Is(err, quectel.ErrNoDialer) {
			t.Errorf("expected ErrNoDialer, got: %v", err)
		}
	})

	t.Run("Fails when the modem does not answer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		transport := quectel.NewMockTransport(ctrl)
		dialer := quectel.NewMockDialer(ctrl)

		gomock.InOrder(
			dialer.EXPECT().Dial(gomock.Any()).Return(transport, nil),
			transport.EXPECT().Write([]byte("AT\r")).Return(3, nil),
			transport.EXPECT().Read(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
				return copy(p, "ERROR\r\n"), nil
			}),
			transport.EXPECT().Close().Return(nil),
		)

		_, err := quectel.New(context.Background(), quectel.Config{Dialer: dialer})
		if !errors.Is(err, quectel.ErrCommandFailed) {
			t.Errorf("expected ErrCommandFailed, got: %v", err)
		}
	})
}

func TestClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, transport := newTestModem(t, ctrl)
	transport.EXPECT().Close().Return(nil)

	if err := m.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := m.Close(); !errors.Is(err, quectel.ErrAlreadyClosed) {
		t.Errorf("expected ErrAlreadyClosed, got: %v", err)
	}
	if _, err := m.Raw(context.Background(), "AT"); !errors.Is(err, quectel.ErrAlreadyClosed) {
		t.Errorf("expected ErrAlreadyClosed, got: %v", err)
	}
}

func TestModemServingCell(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, transport := newTestModem(t, ctrl)
	expectExchange(transport, `AT+QENG="servingcell"`, servingCellResponse)

	lte, nr, err := m.ServingCell(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lte == nil || lte.EARFCN != 275 {
		t.Errorf("lte = %+v, want EARFCN 275", lte)
	}
	if nr == nil || nr.PCI != 920 || nr.Band != 78 {
		t.Errorf("nr = %+v, want PCI 920 band 78", nr)
	}
}

func TestModemDeviceInfo(t *testing.T) {
	t.Run("Full identification", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m, transport := newTestModem(t, ctrl)
		expectExchange(transport, "ATI",
			"Quectel\r\nRM500Q-GL\r\nRevision: RM500QGLABR11A06M4G\r\nOK\r\n")

		info, err := m.DeviceInfo(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if info == nil || info.Model != "RM500Q-GL" {
			t.Errorf("info = %+v, want model RM500Q-GL", info)
		}
	})

	t.Run("Truncated identification yields no record and no error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m, transport := newTestModem(t, ctrl)
		expectExchange(transport, "ATI", "Quectel\r\nOK\r\n")

		info, err := m.DeviceInfo(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if info != nil {
			t.Errorf("info = %+v, want nil", info)
		}
	})
}

func TestModemBandConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, transport := newTestModem(t, ctrl)
	expectExchange(transport, `AT+QNWPREFCFG="mode_pref"`,
		"+QNWPREFCFG: \"mode_pref\",AUTO\r\nOK\r\n")
	expectExchange(transport, `AT+QNWPREFCFG="lte_band"`,
		"+QNWPREFCFG: \"lte_band\",1:3:7:20\r\nOK\r\n")
	expectExchange(transport, `AT+QNWPREFCFG="nsa_nr5g_band"`,
		"+QNWPREFCFG: \"nsa_nr5g_band\",78\r\nOK\r\n")
	expectExchange(transport, `AT+QNWPREFCFG="nr5g_band"`,
		"+QNWPREFCFG: \"nr5g_band\",1:78\r\nOK\r\n")

	config, err := m.BandConfig(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config["mode_pref"] != "AUTO" || config["lte_band"] != "1:3:7:20" || config["nsa_nr5g_band"] != "78" {
		t.Errorf("config = %v", config)
	}
	if config["nr5g_band"] != "1:78" {
		t.Errorf("config = %v", config)
	}
}

func TestModemSetBands(t *testing.T) {
	t.Run("LTE bands join with colons", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m, transport := newTestModem(t, ctrl)
		expectExchange(transport, `AT+QNWPREFCFG="lte_band",1:3:7:20`, "OK\r\n")

		if err := m.SetLTEBands(context.Background(), []int{1, 3, 7, 20}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("NR bands", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m, transport := newTestModem(t, ctrl)
		expectExchange(transport, `AT+QNWPREFCFG="nsa_nr5g_band",78`, "OK\r\n")

		if err := m.SetNRBands(context.Background(), []int{78}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("Empty band list is rejected locally", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m, _ := newTestModem(t, ctrl)
		if err := m.SetLTEBands(context.Background(), nil); err == nil {
			t.Error("expected an error for an empty band list")
		}
	})
}

func TestModemPoll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, transport := newTestModem(t, ctrl)
	expectExchange(transport, `AT+QENG="servingcell"`, servingCellResponse)
	// The NR secondary carrier arrives without signal readings; Poll must
	// borrow them from the NR serving cell via the PCI join.
	expectExchange(transport, "AT+QCAINFO",
		"+QCAINFO: \"PCC\",275,75,\"LTE BAND 1\",1,280,-99,-14,-67,-4\r\n"+
			"+QCAINFO: \"SCC\",648768,10,\"NR5G BAND 78\",920\r\n"+
			"OK\r\n")
	expectExchange(transport, `AT+QENG="neighbourcell"`,
		"+QENG: \"neighbourcell intra\",\"LTE\",275,280,-14,-99,-67,-,-,-,-,-,-\r\nOK\r\n")

	snapshot, err := m.Poll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot.LTE == nil || snapshot.NR == nil {
		t.Fatal("expected both serving cells")
	}
	if len(snapshot.Carriers) != 2 {
		t.Fatalf("got %d carriers, want 2", len(snapshot.Carriers))
	}

	nrCarrier := snapshot.Carriers[1]
	if nrCarrier.RSRP == nil || *nrCarrier.RSRP != -96 {
		t.Errorf("borrowed rsrp = %v, want -96", nrCarrier.RSRP)
	}
	if nrCarrier.SINR == nil || *nrCarrier.SINR != 18 {
		t.Errorf("borrowed sinr = %v, want 18", nrCarrier.SINR)
	}
	if len(snapshot.Neighbours) != 1 {
		t.Errorf("got %d neighbours, want 1", len(snapshot.Neighbours))
	}
}

func TestModemSilentPortCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, transport := newTestModem(t, ctrl)

	// A silent serial port delivers empty reads on its own read timeout.
	// Cancellation must surface on the next read, not after the scanner
	// exhausts its empty-read allowance.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := transport.EXPECT().Read(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
		cancel()
		return 0, nil
	})
	transport.EXPECT().Read(gomock.Any()).Return(0, nil).AnyTimes().After(first)
	transport.EXPECT().Write([]byte("AT+QCAINFO\r")).Return(11, nil)

	_, err := m.CarrierInfo(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}

func TestModemCommandError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, transport := newTestModem(t, ctrl)
	gomock.InOrder(
		transport.EXPECT().Write([]byte("AT+QCAINFO\r")).Return(11, nil),
		transport.EXPECT().Read(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
			return copy(p, "+CME ERROR: 3\r\n"), nil
		}),
	)

	_, err := m.CarrierInfo(context.Background())
	if !errors.Is(err, quectel.ErrCommandFailed) {
		t.Errorf("expected ErrCommandFailed, got: %v", err)
	}
}
