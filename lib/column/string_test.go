package column

import "testing"

type binaryUnmarshaler struct {
	data []byte
}

func (b *binaryUnmarshaler) UnmarshalBinary(data []byte) error {
	b.data = append(b.data[:0], data...)
	return nil
}

func TestString_ScanRow(t *testing.T) {
	t.Run("encoding.BinaryUnmarshaler", func(t *testing.T) {
		col := NewString()
		if _, err := col.Append([]string{"hello", "world"}); err != nil {
			t.Fatal(err)
		}

		for i, s := range []string{"hello", "world"} {
			var dest binaryUnmarshaler
			err := col.ScanRow(&dest, i)
			if err != nil {
				t.Fatalf("unexpected ScanRow error: %v", err)
			}
			if string(dest.data) != s {
				t.Fatalf("ScanRow resulted in %q instead of %q", dest.data, s)
			}
		}
	})

	t.Run("string", func(t *testing.T) {
		col := NewString()
		if err := col.AppendRow("hi"); err != nil {
			t.Fatal(err)
		}
		var s string
		if err := col.ScanRow(&s, 0); err != nil {
			t.Fatal(err)
		}
		if s != "hi" {
			t.Fatalf("ScanRow resulted in %q instead of %q", s, "hi")
		}
	})
}
