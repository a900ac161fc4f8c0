package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Evotec-Bioinformatics/vcf-info2format/internal/vcf"
)

func transformOne(t *testing.T, fields []string, qual bool, line string) *vcf.Record {
	t.Helper()

	r := parseInput(t, planHeaderText+line+"\n")
	plan, err := BuildPlan(r.Header(), fields, qual)
	require.NoError(t, err, "building plan")

	rec, err := r.Next()
	require.NoError(t, err, "reading record")
	require.NotNil(t, rec)
	require.NoError(t, plan.Transform(rec), "transforming record")
	return rec
}

func formatValue(t *testing.T, rec *vcf.Record, key string) string {
	t.Helper()
	v, ok := rec.FormatValue(key)
	require.True(t, ok, "FORMAT %s missing", key)
	return v
}

func TestTransform_IntegerAndFlag(t *testing.T) {
	rec := transformOne(t, []string{"DP", "SOMATIC"}, false,
		"1\t100\t.\tA\tG\t30\tPASS\tDP=10;SOMATIC;AF=0.5\tGT\t0/1")

	_, ok, err := rec.InfoInts("DP")
	require.NoError(t, err)
	assert.False(t, ok, "DP should have left the INFO column")
	assert.False(t, rec.InfoFlag("SOMATIC"), "SOMATIC should have left the INFO column")

	af, ok, err := rec.InfoFloats("AF")
	require.NoError(t, err)
	require.True(t, ok, "AF was not requested and must stay")
	assert.Equal(t, []float32{0.5}, af)

	assert.Equal(t, "10", formatValue(t, rec, "DP"))
	assert.Equal(t, "1", formatValue(t, rec, "SOMATIC"))

	assert.Equal(t, "1\t100\t.\tA\tG\t30\tPASS\tAF=0.5\tGT:DP:SOMATIC\t0/1:10:1", rec.String())
}

func TestTransform_AbsentNonFlag(t *testing.T) {
	rec := transformOne(t, []string{"DP", "SOMATIC"}, false,
		"1\t200\t.\tC\tT\t20\tPASS\tAF=0.5\tGT\t0/1")

	_, ok := rec.FormatValue("DP")
	assert.False(t, ok, "absent DP must not produce a FORMAT value")
	assert.Equal(t, "0", formatValue(t, rec, "SOMATIC"), "absent flag is stored as 0")

	assert.Equal(t, "1\t200\t.\tC\tT\t20\tPASS\tAF=0.5\tGT:SOMATIC\t0/1:0", rec.String())
}

func TestTransform_FloatAndStringSequences(t *testing.T) {
	rec := transformOne(t, []string{"AF", "ANN"}, false,
		"1\t100\t.\tA\tG\t30\tPASS\tAF=0.5,0.25;ANN=a|one,b|two\tGT\t0/1")

	assert.Equal(t, "0.5,0.25", formatValue(t, rec, "AF"))
	assert.Equal(t, "a|one,b|two", formatValue(t, rec, "ANN"))

	assert.Equal(t, "1\t100\t.\tA\tG\t30\tPASS\t.\tGT:AF:ANN\t0/1:0.5,0.25:a|one,b|two", rec.String())
}

func TestTransform_MissingElementKept(t *testing.T) {
	rec := transformOne(t, []string{"AF"}, false,
		"1\t100\t.\tA\tG\t30\tPASS\tAF=0.5,.\tGT\t0/1")

	assert.Equal(t, "0.5,.", formatValue(t, rec, "AF"))
}

func TestTransform_Qual(t *testing.T) {
	rec := transformOne(t, nil, true,
		"1\t100\t.\tA\tG\t30.5\tPASS\tDP=10\tGT\t0/1")

	assert.Equal(t, "30.5", formatValue(t, rec, "QUAL"))
	dp, ok, err := rec.InfoInts("DP")
	require.NoError(t, err)
	require.True(t, ok, "DP was not requested and must stay")
	assert.Equal(t, []int32{10}, dp)

	missing := transformOne(t, nil, true,
		"1\t200\t.\tC\tT\t.\tPASS\tDP=7\tGT\t0/1")
	assert.Equal(t, ".", formatValue(t, missing, "QUAL"))
	assert.Equal(t, "1\t200\t.\tC\tT\t.\tPASS\tDP=7\tGT:QUAL\t0/1:.", missing.String())
}

func TestTransform_ReassociatesHeader(t *testing.T) {
	r := parseInput(t, planHeaderText+"1\t100\t.\tA\tG\t30\tPASS\tDP=10\tGT\t0/1\n")
	plan, err := BuildPlan(r.Header(), []string{"DP"}, false)
	require.NoError(t, err)

	rec, err := r.Next()
	require.NoError(t, err)
	require.Same(t, r.Header(), rec.Header())

	require.NoError(t, plan.Transform(rec))
	assert.Same(t, plan.Header(), rec.Header())
}

func TestTransform_MalformedValue(t *testing.T) {
	r := parseInput(t, planHeaderText+"1\t100\t.\tA\tG\t30\tPASS\tDP=ten\tGT\t0/1\n")
	plan, err := BuildPlan(r.Header(), []string{"DP"}, false)
	require.NoError(t, err)

	rec, err := r.Next()
	require.NoError(t, err)

	err = plan.Transform(rec)
	require.Error(t, err)
	assert.ErrorContains(t, err, "extract INFO DP")
}
