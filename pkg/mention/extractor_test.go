package mention

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	t.Run("single mention", func(t *testing.T) {
		candidates := Extract("please check the rebar @bob")

		assert.Equal(t, []string{"bob"}, candidates)
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		candidates := Extract("ping @bob and @bob again")

		assert.Equal(t, []string{"bob"}, candidates)
	})

	t.Run("multiple mentions keep first-appearance order", func(t *testing.T) {
		candidates := Extract("@carol then @alice then @carol")

		assert.Equal(t, []string{"carol", "alice"}, candidates)
	})

	t.Run("allowed characters", func(t *testing.T) {
		candidates := Extract("cc @jan.van-dijk_2")

		assert.Equal(t, []string{"jan.van-dijk_2"}, candidates)
	})

	t.Run("no mentions", func(t *testing.T) {
		assert.Nil(t, Extract("water damage on level 2"))
		assert.Nil(t, Extract(""))
	})

	t.Run("email addresses yield a candidate that resolution drops", func(t *testing.T) {
		// the extractor is deliberately dumb, the directory lookup filters this out
		candidates := Extract("mail me at bob@example.com")

		assert.Equal(t, []string{"example.com"}, candidates)
	})
}
