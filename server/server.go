// Package server exposes the prover over HTTP: one loaded key pair serves any
// number of prove and verify requests for the relation y = a*x + b.
package server

import (
	"encoding/hex"
	"encoding/json"
	"net/http"

	fr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/b-garbacz/zkp-merlin-sgx/zkp"
	"github.com/b-garbacz/zkp-merlin-sgx/zkp/hwrand"
)

type Server struct {
	params  zkp.Params
	pk      *zkp.ProvingKey
	vk      *zkp.VerifyingKey
	entropy hwrand.Source
	log     zerolog.Logger
}

// New loads the key pair from dataDir and returns a server for the relation
// params. Entropy defaults to the hardware generator.
func New(dataDir string, params zkp.Params, log zerolog.Logger) (*Server, error) {
	pk, err := zkp.LoadProvingKey(dataDir)
	if err != nil {
		return nil, errors.Wrap(err, "loading proving key")
	}
	vk, err := zkp.LoadVerifyingKey(dataDir)
	if err != nil {
		return nil, errors.Wrap(err, "loading verifying key")
	}

	return &Server{
		params:  params,
		pk:      pk,
		vk:      vk,
		entropy: hwrand.RdRand{},
		log:     log,
	}, nil
}

// SetEntropySource overrides the entropy source; tests use a deterministic
// one.
func (s *Server) SetEntropySource(src hwrand.Source) { s.entropy = src }

// Handler returns the routed handler with logging middleware applied.
func (s *Server) Handler() http.Handler {
	router := http.NewServeMux()
	router.HandleFunc("GET /healthz", s.healthz)
	router.HandleFunc("POST /prove", s.handleProve)
	router.HandleFunc("POST /verify", s.handleVerify)
	return LoggingMiddleware(s.log, router)
}

// Start listens for requests on the given port.
func (s *Server) Start(port string) error {
	s.log.Info().Str("port", port).Msg("starting server")
	return http.ListenAndServe(":"+port, s.Handler())
}

// healthz returns success if the key pair is loaded.
func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if s.pk == nil || s.vk == nil {
		ReturnErrorJSON(w, "not ready", http.StatusInternalServerError)
		return
	}
	ReturnJSON(w, "OK", http.StatusOK)
}

// ProveRequest carries the witness and public input as decimal strings.
type ProveRequest struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// ProveResponse carries the hex-encoded proof and the public input it binds.
type ProveResponse struct {
	Proof       string `json:"proof"`
	PublicInput string `json:"public_input"`
}

func (s *Server) handleProve(w http.ResponseWriter, r *http.Request) {
	var req ProveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ReturnErrorJSON(w, "decoding request", http.StatusBadRequest)
		return
	}
	var x, y fr.Element
	if _, err := x.SetString(req.X); err != nil {
		ReturnErrorJSON(w, "parsing x", http.StatusBadRequest)
		return
	}
	if _, err := y.SetString(req.Y); err != nil {
		ReturnErrorJSON(w, "parsing y", http.StatusBadRequest)
		return
	}

	rng, err := hwrand.New(s.entropy)
	if err != nil {
		ReturnErrorJSON(w, "entropy unavailable", http.StatusInternalServerError)
		return
	}
	proof, err := zkp.Prove(s.pk, s.params.Assign(x, y), rng)
	if err != nil {
		s.log.Error().Err(err).Msg("proving failed")
		ReturnErrorJSON(w, "generating proof", http.StatusInternalServerError)
		return
	}
	data, err := zkp.MarshalProof(proof)
	if err != nil {
		ReturnErrorJSON(w, "serializing proof", http.StatusInternalServerError)
		return
	}

	ReturnJSON(w, ProveResponse{
		Proof:       hex.EncodeToString(data),
		PublicInput: y.String(),
	}, http.StatusOK)
}

// VerifyRequest carries a public input and a hex-encoded proof.
type VerifyRequest struct {
	Y     string `json:"y"`
	Proof string `json:"proof"`
}

// VerifyResponse reports the outcome of the check. Valid=false is a complete,
// successful verification of an unsatisfied relation.
type VerifyResponse struct {
	Valid bool `json:"valid"`
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ReturnErrorJSON(w, "decoding request", http.StatusBadRequest)
		return
	}
	var y fr.Element
	if _, err := y.SetString(req.Y); err != nil {
		ReturnErrorJSON(w, "parsing y", http.StatusBadRequest)
		return
	}
	data, err := hex.DecodeString(req.Proof)
	if err != nil {
		ReturnErrorJSON(w, "decoding proof", http.StatusBadRequest)
		return
	}
	proof, err := zkp.UnmarshalProof(data)
	if err != nil {
		// undecodable bytes cannot be a valid proof
		ReturnJSON(w, VerifyResponse{Valid: false}, http.StatusOK)
		return
	}

	rng, err := hwrand.New(s.entropy)
	if err != nil {
		ReturnErrorJSON(w, "entropy unavailable", http.StatusInternalServerError)
		return
	}
	ok, err := zkp.Verify(s.vk, []fr.Element{y}, proof, rng)
	if err != nil {
		s.log.Error().Err(err).Msg("verification fault")
		ReturnErrorJSON(w, "verifying proof", http.StatusInternalServerError)
		return
	}
	ReturnJSON(w, VerifyResponse{Valid: ok}, http.StatusOK)
}
