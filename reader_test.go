package addrlib_test

import (
	"bytes"

	"github.com/bsm/addrlib"
	"github.com/golang/snappy"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Reader", func() {
	It("should parse headers", func() {
		fix := newFixture()
		fix.format = addrlib.FormatV2
		fix.name = "SkyrimSE.exe"
		fix.pointerSize = 8
		fix.addAbs(1, 0x1000)

		r, err := addrlib.NewReader(fix.bytes())
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Header()).To(Equal(addrlib.Header{
			Format:       2,
			Version:      [4]uint32{1, 6, 640, 0},
			PointerSize:  8,
			AddressCount: 1,
		}))
	})

	It("should reject unknown formats", func() {
		fix := newFixture()
		fix.format = 99

		_, err := addrlib.NewReader(fix.bytes())
		Expect(err).To(MatchError(addrlib.ErrInvalidFormat))
	})

	It("should reject truncated headers", func() {
		data := newFixture().bytes()

		_, err := addrlib.NewReader(data[:10])
		Expect(err).To(MatchError(addrlib.ErrOutOfBounds))
	})

	It("should decode empty files", func() {
		r, err := addrlib.NewReader(newFixture().bytes())
		Expect(err).NotTo(HaveOccurred())
		Expect(r.More()).To(BeFalse())
		Expect(r.ReadAll()).To(BeEmpty())
	})

	It("should decode absolute records", func() {
		fix := newFixture().
			addAbs(7, 0x2A0).
			addAbs(3, 0x180)

		Expect(addrlib.Decode(fix.bytes())).To(Equal([]addrlib.Mapping{
			{ID: 7, Offset: 0x2A0},
			{ID: 3, Offset: 0x180},
		}))
	})

	It("should decode id deltas", func() {
		fix := newFixture().
			addAbs(100, 0).
			add(0x11).            // prev+1
			add(0x12, u8(5)).     // prev+u8
			add(0x13, u8(5)).     // prev-u8
			add(0x14, u16(1000)). // prev+u16
			add(0x15, u16(50)).   // prev-u16
			add(0x16, u16(77)).   // absolute u16
			add(0x17, u32(1<<20)) // absolute u32

		ms, err := addrlib.Decode(fix.bytes())
		Expect(err).NotTo(HaveOccurred())

		ids := make([]uint64, len(ms))
		for i, m := range ms {
			ids[i] = m.ID
		}
		Expect(ids).To(Equal([]uint64{100, 101, 106, 101, 1101, 1051, 77, 1 << 20}))
	})

	It("should decode offset deltas", func() {
		fix := newFixture().
			addAbs(1, 0x100).
			add(0x11).            // id prev+1, offset prev+1
			add(0x21, u8(0xFF)).  // offset prev+u8
			add(0x31, u8(1)).     // offset prev-u8
			add(0x41, u16(0x10)). // offset prev+u16
			add(0x51, u16(0x20)). // offset prev-u16
			add(0x61, u16(0xBEEF)).
			add(0x71, u32(0x0FF1CE))

		ms, err := addrlib.Decode(fix.bytes())
		Expect(err).NotTo(HaveOccurred())

		offsets := make([]uint64, len(ms))
		for i, m := range ms {
			offsets[i] = m.Offset
		}
		Expect(offsets).To(Equal([]uint64{
			0x100, 0x101, 0x200, 0x1FF, 0x20F, 0x1EF, 0xBEEF, 0x0FF1CE,
		}))
	})

	It("should decode pointer-scaled offsets", func() {
		fix := newFixture()
		fix.pointerSize = 4
		fix.add(0x01, u64(16))        // id 1, absolute offset 16
		fix.add(0x91)                 // tmp = 16/4, +1, re-expanded to 20
		fix.add(0x80, u64(3), u64(7)) // absolute reads are re-expanded too

		ms, err := addrlib.Decode(fix.bytes())
		Expect(err).NotTo(HaveOccurred())
		Expect(ms[0].Offset).To(Equal(uint64(16)))
		Expect(ms[1].Offset).To(Equal(uint64(20)))
		Expect(ms[2].Offset).To(Equal(uint64(28)))
	})

	It("should wrap around on unsigned underflow", func() {
		fix := newFixture().
			addAbs(0, 0).
			add(0x33, u8(1), u8(1))

		ms, err := addrlib.Decode(fix.bytes())
		Expect(err).NotTo(HaveOccurred())
		Expect(ms[1].ID).To(Equal(uint64(1<<64 - 1)))
		Expect(ms[1].Offset).To(Equal(uint64(1<<64 - 1)))
	})

	It("should preserve duplicate ids", func() {
		fix := newFixture().
			addAbs(42, 0x100).
			addAbs(42, 0x200)

		ms, err := addrlib.Decode(fix.bytes())
		Expect(err).NotTo(HaveOccurred())
		Expect(ms).To(HaveLen(2))
	})

	It("should fail on unhandled id modes", func() {
		for tag := byte(0x08); tag <= 0x0F; tag++ {
			fix := newFixture().add(tag)

			_, err := addrlib.Decode(fix.bytes())
			Expect(err).To(MatchError(addrlib.ErrUnhandledTag), "for tag %#x", tag)
		}
	})

	It("should fail on zero pointer size when scaling is requested", func() {
		fix := newFixture().
			addAbs(1, 16).
			add(0x91)

		_, err := addrlib.Decode(fix.bytes())
		Expect(err).To(MatchError(addrlib.ErrPointerSize))
	})

	It("should allow zero pointer size without scaling", func() {
		fix := newFixture().
			addAbs(1, 16).
			add(0x11)

		_, err := addrlib.Decode(fix.bytes())
		Expect(err).NotTo(HaveOccurred())
	})

	It("should fail on truncated records", func() {
		fix := newFixture().
			addAbs(1, 2).
			add(0x02) // u8 delta missing

		_, err := addrlib.Decode(fix.bytes())
		Expect(err).To(MatchError(addrlib.ErrOutOfBounds))
	})

	It("should stop iterating after an error", func() {
		fix := newFixture().add(0x0F)

		r, err := addrlib.NewReader(fix.bytes())
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Next()).To(BeFalse())
		Expect(r.Err()).To(MatchError(addrlib.ErrUnhandledTag))
		Expect(r.More()).To(BeFalse())
		Expect(r.Next()).To(BeFalse())
	})

	It("should decode exactly the declared number of records", func() {
		fix := newFixture()
		for i := 0; i < 1000; i++ {
			fix.add(0x11)
		}

		ms, err := addrlib.Decode(fix.bytes())
		Expect(err).NotTo(HaveOccurred())
		Expect(ms).To(HaveLen(1000))
		Expect(ms[999]).To(Equal(addrlib.Mapping{ID: 1000, Offset: 1000}))
	})

	It("should inflate snappy framed input", func() {
		fix := newFixture().addAbs(9, 0x77)

		buf := new(bytes.Buffer)
		w := snappy.NewBufferedWriter(buf)
		_, err := w.Write(fix.bytes())
		Expect(err).NotTo(HaveOccurred())
		Expect(w.Close()).To(Succeed())

		Expect(addrlib.Decode(buf.Bytes())).To(Equal([]addrlib.Mapping{
			{ID: 9, Offset: 0x77},
		}))
	})
})
