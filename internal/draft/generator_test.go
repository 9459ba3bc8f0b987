package draft

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kviz/internal/codec"
	"github.com/abhisek/kviz/internal/llm"
	"github.com/abhisek/kviz/internal/question"
)

func draftsJSON(records ...string) json.RawMessage {
	return json.RawMessage(`{"questions":[` + strings.Join(records, ",") + `]}`)
}

const (
	tfDanube   = `{"tip":"TF","text":"The Danube flows into the Black Sea","tocan":true,"opcije":["","","",""],"tocan_index":0}`
	mcqLongest = `{"tip":"MCQ","text":"Which river is the longest?","tocan":false,"opcije":["Nile","Rhine","Thames","Seine"],"tocan_index":0}`
)

func TestGenerate_DecodesBothVariants(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: draftsJSON(tfDanube, mcqLongest),
		Usage:   llm.Usage{InputTokens: 100, OutputTokens: 80},
	})
	gen := New(mock, DefaultConfig())

	batch, err := gen.Generate(context.Background(), Input{Topic: "Rivers", Count: 2})
	require.NoError(t, err)
	require.Len(t, batch.Questions, 2)
	assert.Empty(t, batch.Rejected)
	assert.Equal(t, 100, batch.Usage.InputTokens)

	tf, ok := batch.Questions[0].(question.TrueFalse)
	require.True(t, ok)
	assert.True(t, tf.Correct())

	mc, ok := batch.Questions[1].(question.MultipleChoice)
	require.True(t, ok)
	assert.Equal(t, "Nile", mc.Option(mc.CorrectIndex()))
}

func TestGenerate_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: draftsJSON(tfDanube)})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{Topic: "  Rivers ", Count: 3, Existing: []string{"Is Paris in France?"}})
	require.NoError(t, err)
	require.Equal(t, 1, mock.CallCount())

	req := mock.Calls[0]
	assert.Equal(t, DraftSchema, req.Schema)
	assert.Equal(t, 3*DefaultConfig().MaxTokensPerQuestion, req.MaxTokens)
	require.Len(t, req.Messages, 1)
	assert.Contains(t, req.Messages[0].Content, "Topic: Rivers\n")
	assert.Contains(t, req.Messages[0].Content, "Number of questions: 3")
	assert.Contains(t, req.Messages[0].Content, "1. Is Paris in France?")
}

func TestGenerate_RejectsInvalidRecords(t *testing.T) {
	badTip := `{"tip":"ESSAY","text":"Discuss rivers","tocan":false,"opcije":["","","",""],"tocan_index":0}`
	blankOption := `{"tip":"MCQ","text":"Pick one","tocan":false,"opcije":["a","","c","d"],"tocan_index":0}`
	emptyText := `{"tip":"TF","text":"   ","tocan":true,"opcije":["","","",""],"tocan_index":0}`

	mock := llm.NewMockProvider(llm.MockResponse{Content: draftsJSON(badTip, blankOption, tfDanube, emptyText)})
	gen := New(mock, DefaultConfig())

	batch, err := gen.Generate(context.Background(), Input{Topic: "Rivers", Count: 4})
	require.NoError(t, err)
	require.Len(t, batch.Questions, 1)
	assert.Equal(t, "The Danube flows into the Black Sea", batch.Questions[0].Text())

	require.Len(t, batch.Rejected, 3)
	for _, r := range batch.Rejected {
		var ferr *codec.FormatError
		assert.True(t, errors.As(r.Err, &ferr), "record %d: %v", r.Record, r.Err)
	}
	assert.Equal(t, []int{0, 1, 3}, []int{batch.Rejected[0].Record, batch.Rejected[1].Record, batch.Rejected[2].Record})

	var verr *question.ValidationError
	require.True(t, errors.As(batch.Rejected[1].Err, &verr))
	assert.Equal(t, "options[1]", verr.Field)
}

func TestGenerate_RejectsDuplicates(t *testing.T) {
	again := `{"tip":"TF","text":"the  danube flows into the BLACK sea","tocan":false,"opcije":["","","",""],"tocan_index":0}`
	mock := llm.NewMockProvider(llm.MockResponse{Content: draftsJSON(tfDanube, again, mcqLongest)})
	gen := New(mock, DefaultConfig())

	batch, err := gen.Generate(context.Background(), Input{
		Topic:    "Rivers",
		Count:    5,
		Existing: []string{"Which river is the longest?"},
	})
	require.NoError(t, err)
	require.Len(t, batch.Questions, 1)
	require.Len(t, batch.Rejected, 2)
	assert.ErrorIs(t, batch.Rejected[0].Err, ErrDuplicate)
	assert.ErrorIs(t, batch.Rejected[1].Err, ErrDuplicate)
}

func TestGenerate_ValidatorRejection(t *testing.T) {
	repeated := `{"tip":"MCQ","text":"Capital of Croatia?","tocan":false,"opcije":["Zagreb","Split","zagreb","Rijeka"],"tocan_index":0}`
	mock := llm.NewMockProvider(llm.MockResponse{Content: draftsJSON(repeated, tfDanube)})
	gen := New(mock, DefaultConfig())

	batch, err := gen.Generate(context.Background(), Input{Topic: "Croatia", Count: 2})
	require.NoError(t, err)
	require.Len(t, batch.Rejected, 1)

	var verr *ValidationError
	require.True(t, errors.As(batch.Rejected[0].Err, &verr))
	assert.Equal(t, "distinct-options", verr.Validator)
	assert.Contains(t, verr.Message, "A and C")
}

func TestGenerate_StopsAtCount(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: draftsJSON(tfDanube, mcqLongest)})
	gen := New(mock, DefaultConfig())

	batch, err := gen.Generate(context.Background(), Input{Topic: "Rivers", Count: 1})
	require.NoError(t, err)
	assert.Len(t, batch.Questions, 1)
}

func TestGenerate_NothingUsable(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: draftsJSON()})
	gen := New(mock, DefaultConfig())

	batch, err := gen.Generate(context.Background(), Input{Topic: "Rivers", Count: 2})
	assert.ErrorIs(t, err, ErrNoDrafts)
	require.NotNil(t, batch)
	assert.Empty(t, batch.Questions)
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{Topic: "Rivers", Count: 1})
	var unavail *llm.ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail))
}

func TestGenerate_PurposeIsTagged(t *testing.T) {
	var gotPurpose string
	p := purposeProvider{MockProvider: llm.NewMockProvider(llm.MockResponse{Content: draftsJSON(tfDanube)}), seen: &gotPurpose}
	gen := New(p, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{Topic: "Rivers", Count: 1})
	require.NoError(t, err)
	assert.Equal(t, llm.PurposeDraft, gotPurpose)
}

type purposeProvider struct {
	*llm.MockProvider
	seen *string
}

func (p purposeProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	*p.seen = llm.PurposeFrom(ctx)
	return p.MockProvider.Generate(ctx, req)
}

func TestGenerate_WithSchemaMock(t *testing.T) {
	gen := New(llm.NewSchemaMockProvider(), DefaultConfig())

	batch, err := gen.Generate(context.Background(), Input{Topic: "anything", Count: 3})
	require.NoError(t, err)
	require.Len(t, batch.Questions, 1)
	assert.Equal(t, question.KindTrueFalse, batch.Questions[0].Kind())
}

func TestClampCount(t *testing.T) {
	assert.Equal(t, 1, clampCount(0))
	assert.Equal(t, 1, clampCount(-4))
	assert.Equal(t, 7, clampCount(7))
	assert.Equal(t, MaxCount, clampCount(MaxCount+10))
}

func TestDropPlaceholders(t *testing.T) {
	var tf, mcq codec.Record
	require.NoError(t, json.Unmarshal([]byte(tfDanube), &tf))
	require.NoError(t, json.Unmarshal([]byte(mcqLongest), &mcq))

	tf = dropPlaceholders(tf)
	assert.Nil(t, tf.Options)
	assert.Nil(t, tf.CorrectIndex)
	require.NotNil(t, tf.Correct)
	assert.True(t, *tf.Correct)

	mcq = dropPlaceholders(mcq)
	assert.Nil(t, mcq.Correct)
	assert.Len(t, mcq.Options, question.OptionCount)
	require.NotNil(t, mcq.CorrectIndex)

	// Raw model output mixes both variants and must not decode as is.
	var raw codec.Record
	require.NoError(t, json.Unmarshal([]byte(tfDanube), &raw))
	_, err := codec.DecodeRecord(raw)
	require.Error(t, err)
}
