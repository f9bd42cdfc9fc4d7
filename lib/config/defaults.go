// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package config

// Trigger paths OR-ed into the first selection stage.
var defaultTriggers = []string{
	"HLT_IsoMu24_eta2p1",
	"HLT_IsoMu24",
	"HLT_IsoMu27",
	"HLT_Mu50",
	"HLT_Ele32_WPTight_Gsf",
	"HLT_Ele32_WPTight_Gsf_L1DoubleEG",
	"HLT_Ele35_WPTight_Gsf",
	"HLT_Ele115_CaloIdVT_GsfTrkIdT",
	"HLT_Photon200",
	"HLT_Mu17_TrkIsoVVL_Mu8_TrkIsoVVL",
	"HLT_Mu17_TrkIsoVVL_Mu8_TrkIsoVVL_DZ",
	"HLT_Mu17_TrkIsoVVL_Mu8_TrkIsoVVL_DZ_Mass8",
	"HLT_Mu17_TrkIsoVVL_Mu8_TrkIsoVVL_DZ_Mass3p8",
	"HLT_Mu19_TrkIsoVVL_Mu9_TrkIsoVVL_DZ_Mass3p8",
	"HLT_Mu37_TkMu27",
	"HLT_TripleMu_12_10_5",
	"HLT_TripleMu_10_5_5_DZ",
	"HLT_Ele23_Ele12_CaloIdL_TrackIdL_IsoVL",
	"HLT_Ele16_Ele12_Ele8_CaloIdL_TrackIdL",
	"HLT_DoubleEle25_CaloIdL_MW",
	"HLT_DoubleEle33_CaloIdL_MW",
	"HLT_DiEle27_WPTightCaloOnly_L1DoubleEG",
	"HLT_DoublePhoton70",
	"HLT_Mu23_TrkIsoVVL_Ele12_CaloIdL_TrackIdL_IsoVL",
	"HLT_Mu23_TrkIsoVVL_Ele12_CaloIdL_TrackIdL_IsoVL_DZ",
	"HLT_Mu8_TrkIsoVVL_Ele23_CaloIdL_TrackIdL_IsoVL_DZ",
	"HLT_Mu12_TrkIsoVVL_Ele23_CaloIdL_TrackIdL_IsoVL_DZ",
	"HLT_Mu27_Ele37_CaloIdL_MW",
	"HLT_Mu37_Ele27_CaloIdL_MW",
	"HLT_DiMu9_Ele9_CaloIdL_TrackIdL",
	"HLT_DiMu9_Ele9_CaloIdL_TrackIdL_DZ",
	"HLT_Mu8_DiEle12_CaloIdL_TrackIdL",
}

// Event-quality flags AND-ed into the second selection stage.
var defaultMETFilters = []string{
	"Flag_goodVertices",
	"Flag_HBHENoiseFilter",
	"Flag_HBHENoiseIsoFilter",
	"Flag_EcalDeadCellTriggerPrimitiveFilter",
	"Flag_BadPFMuonFilter",
	"Flag_BadPFMuonDzFilter",
	"Flag_eeBadScFilter",
}

// defaultExplicitBranches is written for every sample: primary vertex,
// the selection inputs themselves, event identity, MET and object
// multiplicities.
func defaultExplicitBranches() []string {
	branches := []string{
		"PV_ndof", "PV_x", "PV_y", "PV_z", "PV_chi2", "PV_npvs", "PV_npvsGood",
	}
	branches = append(branches, defaultTriggers...)
	branches = append(branches, defaultMETFilters...)
	return append(branches,
		"run", "event", "luminosityBlock",
		"PuppiMET_pt", "PuppiMET_phi",
		"nElectron", "nMuon", "nJet",
	)
}

// Generator-level and pileup branches that only simulated samples have.
var defaultSimulatedBranches = []string{
	"Pileup_nPU",
	"Pileup_nTrueInt",
	"Generator_weight",
	"GenMET_pt",
	"GenMET_phi",
	"nGenPart",
	"nLHEPart",
	"nGenJet",
	"nPSWeight",
	"PSWeight",
	"nLHEPdfWeight",
	"LHEPdfWeight",
	"nLHEScaleWeight",
	"LHEScaleWeight",
	"LHEWeight_originalXWGTUP",
}

var defaultWildcardSimulated = []string{
	"Electron_*", "Muon_*", "Jet_*", "GenPart_*", "LHEPart_*", "GenJet_*",
}

var defaultWildcardData = []string{
	"Electron_*", "Muon_*", "Jet_*",
}
