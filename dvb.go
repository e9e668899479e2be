package astisi

import (
	"math"
	"time"
)

// readDVBTime reads a DVB time: 16 bits of MJD date followed by 6 BCD digits
// of hours, minutes and seconds.
// Page: 160 | Annex C | Link: https://www.dvb.org/resources/public/standards/a38_dvb-si_specification.pdf
func readDVBTime(c *BitCursor) time.Time {
	mjdBits := c.ReadUint16()
	h := readDVBDurationByte(c)
	m := readDVBDurationByte(c)
	s := readDVBDurationByte(c)
	if c.HasError() {
		return time.Time{}
	}

	mjd := float64(mjdBits)
	ytf := math.Floor((mjd - 15078.2) / 365.25)
	mtf := math.Floor((mjd - 14956.1 - math.Floor(ytf*365.25)) / 30.6001)
	mt := int(mtf)
	d := int(mjd - 14956 - math.Floor(ytf*365.25) - math.Floor(mtf*30.6001))

	k := int(b2u(mt>>1 == 7))
	y := int(ytf) + k
	mo := mt - 1 - k*12

	return time.Date(1900+y, time.Month(mo), d, int(h), int(m), int(s), 0, time.UTC)
}

// readDVBDurationMinutes reads 4 BCD digits of hours and minutes.
func readDVBDurationMinutes(c *BitCursor) time.Duration {
	return readDVBDurationByte(c)*time.Hour + readDVBDurationByte(c)*time.Minute
}

// readDVBDurationByte reads 2 BCD digits.
func readDVBDurationByte(c *BitCursor) time.Duration {
	b := c.ReadUint8()
	return time.Duration(b>>4*10 + b&0xf)
}

func writeDVBTime(c *BitCursor, t time.Time) {
	year := t.Year() - 1900
	month := t.Month()
	day := t.Day()

	l := 0
	if month <= time.February {
		l = 1
	}
	mjd := 14956 + day + int(float64(year-l)*365.25) + int(float64(int(month)+1+l*12)*30.6001)

	c.WriteUint16(uint16(mjd))
	d := t.Sub(t.Truncate(24 * time.Hour))
	c.WriteUint8(dvbDurationByteRepresentation(uint8(d.Hours())))
	c.WriteUint8(dvbDurationByteRepresentation(uint8(int(d.Minutes()) % 60)))
	c.WriteUint8(dvbDurationByteRepresentation(uint8(int(d.Seconds()) % 60)))
}

func writeDVBDurationMinutes(c *BitCursor, d time.Duration) {
	c.WriteUint8(dvbDurationByteRepresentation(uint8(d.Hours())))
	c.WriteUint8(dvbDurationByteRepresentation(uint8(int(d.Minutes()) % 60)))
}

func dvbDurationByteRepresentation(n uint8) uint8 {
	return n/10<<4 | n%10
}
