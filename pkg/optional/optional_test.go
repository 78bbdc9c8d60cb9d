package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type payload struct {
	Name   Field[string] `json:"name"`
	Amount Field[int64]  `json:"amount"`
}

func TestFieldDecoding(t *testing.T) {
	t.Parallel()

	t.Run("absent key stays undefined", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"amount": 12}`), &p))

		require.False(t, p.Name.Defined())
		require.False(t, p.Name.IsNull())
		require.True(t, p.Amount.Defined())
	})

	t.Run("explicit null is defined and null", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"name": null}`), &p))

		require.True(t, p.Name.Defined())
		require.True(t, p.Name.IsNull())
		require.Nil(t, p.Name.Ptr())

		_, ok := p.Name.Get()
		require.False(t, ok)
	})

	t.Run("value is defined and non-null", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"name": "rent", "amount": 950}`), &p))

		require.True(t, p.Name.Defined())
		require.False(t, p.Name.IsNull())

		name, ok := p.Name.Get()
		require.True(t, ok)
		require.Equal(t, "rent", name)

		amount, ok := p.Amount.Get()
		require.True(t, ok)
		require.Equal(t, int64(950), amount)
	})

	t.Run("type mismatch surfaces the decode error", func(t *testing.T) {
		var p payload
		require.Error(t, json.Unmarshal([]byte(`{"amount": "plenty"}`), &p))
	})
}

func TestFieldConstructors(t *testing.T) {
	t.Parallel()

	require.False(t, Undefined[int]().Defined())
	require.True(t, Null[int]().IsNull())

	f := Of(7)
	v, ok := f.Get()
	require.True(t, ok)
	require.Equal(t, 7, v)
}

func TestFieldMarshal(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Of("food"))
	require.NoError(t, err)
	require.JSONEq(t, `"food"`, string(b))

	b, err = json.Marshal(Null[string]())
	require.NoError(t, err)
	require.Equal(t, "null", string(b))
}

func TestPtrReturnsCopy(t *testing.T) {
	t.Parallel()

	f := Of(3)
	p := f.Ptr()
	require.NotNil(t, p)
	*p = 99

	v, _ := f.Get()
	require.Equal(t, 3, v)
}
