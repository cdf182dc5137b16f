package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/b-garbacz/zkp-merlin-sgx/zkp"
	"github.com/b-garbacz/zkp-merlin-sgx/zkp/hwrand"
)

var testEntropy = hwrand.FixedSource{0x42}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	params := zkp.NewParams(3, 5)

	rng, err := hwrand.New(testEntropy)
	require.NoError(t, err)
	srs, err := zkp.UniversalSetup(zkp.Bounds{NbConstraints: 2, NbVariables: 3, NbNonZero: 6}, rng)
	require.NoError(t, err)
	pk, vk, err := zkp.Index(srs, params.Placeholder())
	require.NoError(t, err)
	require.NoError(t, pk.Save(dir))
	require.NoError(t, vk.Save(dir))

	s, err := New(dir, params, zerolog.Nop())
	require.NoError(t, err)
	s.SetEntropySource(testEntropy)
	return s
}

func postJSON(t *testing.T, h http.Handler, path string, body, out interface{}) int {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}
	return rec.Code
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestProveVerifyRoundTrip(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	var proveResp ProveResponse
	code := postJSON(t, h, "/prove", ProveRequest{X: "11", Y: "38"}, &proveResp)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, proveResp.Proof)
	require.Equal(t, "38", proveResp.PublicInput)

	var verifyResp VerifyResponse
	code = postJSON(t, h, "/verify", VerifyRequest{Y: "38", Proof: proveResp.Proof}, &verifyResp)
	require.Equal(t, http.StatusOK, code)
	require.True(t, verifyResp.Valid)

	// wrong public input: complete verification, negative result
	code = postJSON(t, h, "/verify", VerifyRequest{Y: "39", Proof: proveResp.Proof}, &verifyResp)
	require.Equal(t, http.StatusOK, code)
	require.False(t, verifyResp.Valid)
}

func TestProveBadInput(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	code := postJSON(t, h, "/prove", ProveRequest{X: "eleven", Y: "38"}, nil)
	require.Equal(t, http.StatusBadRequest, code)
}

func TestVerifyGarbageProof(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	var verifyResp VerifyResponse
	code := postJSON(t, h, "/verify", VerifyRequest{Y: "38", Proof: "deadbeef"}, &verifyResp)
	require.Equal(t, http.StatusOK, code)
	require.False(t, verifyResp.Valid)
}
