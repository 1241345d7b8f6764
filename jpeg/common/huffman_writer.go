package common

// WriteHuffmanTable writes one DHT segment for a table.
// class: 0 for DC, 1 for AC; id: table destination (0 or 1 in baseline).
func WriteHuffmanTable(writer *Writer, class, id byte, table *HuffmanTable) error {
	totalValues := 0
	for _, count := range table.Bits {
		totalValues += count
	}

	data := make([]byte, 1+16+totalValues)
	data[0] = class<<4 | id

	for i := 0; i < 16; i++ {
		data[1+i] = byte(table.Bits[i])
	}
	copy(data[17:], table.Values)

	return writer.WriteSegment(MarkerDHT, data)
}
