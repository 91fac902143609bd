package goble

import (
	"context"
	"errors"

	goble "github.com/go-ble/ble"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/nathikazad/lura-bletest/mocks"
	"github.com/nathikazad/lura-bletest/pkg/ble"
)

const (
	testServiceUUID        = "0000fff0-0000-1000-8000-00805f9b34fb"
	testCharacteristicUUID = "0000fff1-0000-1000-8000-00805f9b34fb"
)

var _ = Describe("Adapter", func() {
	var (
		ctrl    *gomock.Controller
		device  *mocks.GobleDevice
		adapter *Adapter
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		device = mocks.NewGobleDevice(ctrl)
		adapter = &Adapter{
			device:   device,
			state:    ble.RadioReady,
			watchers: make(map[int]func(ble.RadioState)),
		}
		DeferCleanup(func() {
			ctrl.Finish()
		})
	})

	newAdvertisement := func(addr, name string, rssi int, connectable bool) *mocks.GobleAdvertisement {
		adv := mocks.NewGobleAdvertisement(ctrl)
		adv.EXPECT().Addr().Return(goble.NewAddr(addr)).AnyTimes()
		adv.EXPECT().LocalName().Return(name).AnyTimes()
		adv.EXPECT().RSSI().Return(rssi).AnyTimes()
		adv.EXPECT().Connectable().Return(connectable).AnyTimes()
		return adv
	}

	Describe("Scan", func() {
		It("converts advertisements to peers", func() {
			device.EXPECT().Scan(gomock.Any(), false, gomock.Any()).DoAndReturn(
				func(_ context.Context, _ bool, handler goble.AdvHandler) error {
					handler(newAdvertisement("aa:bb:cc:dd:ee:01", "lura", -48, true))
					return nil
				})

			var peers []ble.Peer
			err := adapter.Scan(context.Background(), ble.ScanFilter{}, func(peer ble.Peer) {
				peers = append(peers, peer)
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(peers).To(HaveLen(1))
			Expect(peers[0].ID).To(Equal("aa:bb:cc:dd:ee:01"))
			Expect(peers[0].LocalName).To(Equal("lura"))
			Expect(peers[0].RSSI).To(Equal(int16(-48)))
			Expect(peers[0].Connectable).To(BeTrue())
		})

		It("drops advertisements from other peers when targeting", func() {
			device.EXPECT().Scan(gomock.Any(), true, gomock.Any()).DoAndReturn(
				func(_ context.Context, _ bool, handler goble.AdvHandler) error {
					handler(newAdvertisement("aa:bb:cc:dd:ee:01", "lura", -48, true))
					handler(newAdvertisement("aa:bb:cc:dd:ee:02", "other", -70, true))
					handler(newAdvertisement("aa:bb:cc:dd:ee:01", "lura", -50, true))
					return nil
				})

			var peers []ble.Peer
			filter := ble.ScanFilter{TargetID: "AA:BB:CC:DD:EE:01", AllowDuplicates: true}
			err := adapter.Scan(context.Background(), filter, func(peer ble.Peer) {
				peers = append(peers, peer)
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(peers).To(HaveLen(2))
			Expect(peers[0].ID).To(Equal("aa:bb:cc:dd:ee:01"))
			Expect(peers[1].ID).To(Equal("aa:bb:cc:dd:ee:01"))
		})

		It("reports cancellation instead of backend noise", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			device.EXPECT().Scan(gomock.Any(), false, gomock.Any()).Return(errors.New("connection canceled"))

			err := adapter.Scan(ctx, ble.ScanFilter{}, func(ble.Peer) {})
			Expect(err).To(MatchError(context.Canceled))
		})

		It("fails fast when the radio is down", func() {
			adapter.state = ble.RadioUnready
			err := adapter.Scan(context.Background(), ble.ScanFilter{}, func(ble.Peer) {})
			Expect(err).To(MatchError(ble.ErrRadioUnready))
		})
	})

	Describe("Connect", func() {
		It("dials the peer", func() {
			client := mocks.NewGobleClient(ctrl)
			disconnected := make(chan struct{})
			client.EXPECT().Disconnected().Return(disconnected)
			client.EXPECT().Addr().Return(goble.NewAddr("aa:bb:cc:dd:ee:01")).AnyTimes()
			device.EXPECT().Dial(gomock.Any(), goble.NewAddr("aa:bb:cc:dd:ee:01")).Return(client, nil)

			conn, err := adapter.Connect(context.Background(), "aa:bb:cc:dd:ee:01")
			Expect(err).NotTo(HaveOccurred())
			Expect(conn.PeerID()).To(Equal("aa:bb:cc:dd:ee:01"))

			close(disconnected)
			Eventually(conn.Disconnected()).Should(Receive(MatchError(ble.ErrLinkLost)))
		})

		It("wraps dial failures as temporary link errors", func() {
			device.EXPECT().Dial(gomock.Any(), gomock.Any()).Return(nil, errors.New("can't dial"))

			_, err := adapter.Connect(context.Background(), "aa:bb:cc:dd:ee:01")
			Expect(err).To(HaveOccurred())
			Expect(ble.Temporary(err)).To(BeTrue())
			Expect(ble.IsBenign(err)).To(BeFalse())
		})

		It("reports cancellation over the dial failure", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			device.EXPECT().Dial(gomock.Any(), gomock.Any()).Return(nil, errors.New("dial canceled"))

			_, err := adapter.Connect(ctx, "aa:bb:cc:dd:ee:01")
			Expect(err).To(MatchError(context.Canceled))
		})

		It("fails fast when the radio is down", func() {
			adapter.state = ble.RadioUnready
			_, err := adapter.Connect(context.Background(), "aa:bb:cc:dd:ee:01")
			Expect(err).To(MatchError(ble.ErrRadioUnready))
		})
	})

	Describe("WatchRadio", func() {
		It("reports the current state and later transitions", func() {
			var states []ble.RadioState
			stop := adapter.WatchRadio(func(state ble.RadioState) {
				states = append(states, state)
			})
			Expect(states).To(Equal([]ble.RadioState{ble.RadioReady}))

			adapter.setState(ble.RadioUnready)
			Expect(states).To(Equal([]ble.RadioState{ble.RadioReady, ble.RadioUnready}))

			stop()
			adapter.setState(ble.RadioReady)
			Expect(states).To(HaveLen(2))
		})
	})
})

var _ = Describe("Conn", func() {
	var (
		ctrl   *gomock.Controller
		client *mocks.GobleClient
		conn   *Conn
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		client = mocks.NewGobleClient(ctrl)
		conn = &Conn{client: client, done: make(chan error, 1)}
		DeferCleanup(func() {
			ctrl.Finish()
		})
	})

	discoverMeasurement := func() *goble.Characteristic {
		svcUUID := goble.MustParse(testServiceUUID)
		charUUID := goble.MustParse(testCharacteristicUUID)
		service := goble.NewService(svcUUID)
		char := goble.NewCharacteristic(charUUID)
		client.EXPECT().DiscoverServices([]goble.UUID{svcUUID}).Return([]*goble.Service{service}, nil)
		client.EXPECT().DiscoverCharacteristics([]goble.UUID{charUUID}, service).Return([]*goble.Characteristic{char}, nil)
		client.EXPECT().DiscoverDescriptors(nil, char).Return(nil, nil)
		return char
	}

	Describe("Characteristic", func() {
		It("walks the discovery chain", func() {
			discoverMeasurement()

			char, err := conn.Characteristic(context.Background(), testServiceUUID, testCharacteristicUUID)
			Expect(err).NotTo(HaveOccurred())
			Expect(char).NotTo(BeNil())
		})

		It("rejects a peer without the service", func() {
			svcUUID := goble.MustParse(testServiceUUID)
			client.EXPECT().DiscoverServices([]goble.UUID{svcUUID}).Return(nil, nil)

			_, err := conn.Characteristic(context.Background(), testServiceUUID, testCharacteristicUUID)
			Expect(err).To(HaveOccurred())
		})

		It("classifies reads rejected during authorization", func() {
			char := discoverMeasurement()
			client.EXPECT().ReadCharacteristic(char).Return(nil, errors.New("ATT request failed: insufficient authentication"))

			handle, err := conn.Characteristic(context.Background(), testServiceUUID, testCharacteristicUUID)
			Expect(err).NotTo(HaveOccurred())
			_, err = handle.Read(context.Background())
			Expect(err).To(MatchError(ble.ErrAuthorizationPending))
			Expect(ble.Temporary(err)).To(BeTrue())
		})

		It("classifies reads rejected by a stale bond", func() {
			char := discoverMeasurement()
			client.EXPECT().ReadCharacteristic(char).Return(nil, errors.New("authentication failure"))

			handle, err := conn.Characteristic(context.Background(), testServiceUUID, testCharacteristicUUID)
			Expect(err).NotTo(HaveOccurred())
			_, err = handle.Read(context.Background())
			Expect(err).To(MatchError(ble.ErrPairingMismatch))
			Expect(ble.Temporary(err)).To(BeFalse())
		})

		It("routes notifications and unsubscribes once", func() {
			char := discoverMeasurement()
			var handler goble.NotificationHandler
			client.EXPECT().Subscribe(char, false, gomock.Any()).DoAndReturn(
				func(_ *goble.Characteristic, _ bool, h goble.NotificationHandler) error {
					handler = h
					return nil
				})
			client.EXPECT().Unsubscribe(char, false).Return(nil)

			handle, err := conn.Characteristic(context.Background(), testServiceUUID, testCharacteristicUUID)
			Expect(err).NotTo(HaveOccurred())

			var received [][]byte
			cancel, err := handle.Subscribe(func(value []byte) {
				received = append(received, value)
			})
			Expect(err).NotTo(HaveOccurred())
			handler([]byte{7})
			Expect(received).To(Equal([][]byte{{7}}))

			cancel()
			cancel()
		})

		It("negotiates the MTU", func() {
			discoverMeasurement()
			client.EXPECT().ExchangeMTU(requestedMTU).Return(185, nil)

			handle, err := conn.Characteristic(context.Background(), testServiceUUID, testCharacteristicUUID)
			Expect(err).NotTo(HaveOccurred())
			mtu, err := handle.MTU()
			Expect(err).NotTo(HaveOccurred())
			Expect(mtu).To(Equal(185))
		})
	})

	Describe("Close", func() {
		It("tears the link down and reports a cancellation", func() {
			client.EXPECT().ClearSubscriptions().Return(nil)
			client.EXPECT().CancelConnection().Return(nil)

			Expect(conn.Close()).To(Succeed())
			Expect(conn.Disconnected()).To(Receive(MatchError(ble.ErrCancelled)))
		})

		It("wins over a racing disconnect event", func() {
			disconnected := make(chan struct{})
			client.EXPECT().Disconnected().Return(disconnected)
			client.EXPECT().ClearSubscriptions().Return(nil)
			client.EXPECT().CancelConnection().Return(nil)
			conn = newConn(client)

			Expect(conn.Close()).To(Succeed())
			close(disconnected)

			Expect(conn.Disconnected()).To(Receive(MatchError(ble.ErrCancelled)))
			Consistently(conn.Disconnected()).ShouldNot(Receive())
		})
	})
})
