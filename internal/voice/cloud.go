package voice

import "context"

// CloudVoiceDefault is the voice selected on a fresh install.
const CloudVoiceDefault = "en-US-AnaNeural"

// cloudVoices is the neural voice catalog offered by the cloud engine.
// Display names are what the settings form shows; ids are stored in config.
var cloudVoices = [][2]string{
	{"Ova", "en-US-AnaNeural"},
	// US
	{"Aria (US)", "en-US-AriaNeural"},
	{"Christopher (US)", "en-US-ChristopherNeural"},
	{"Eric (US)", "en-US-EricNeural"},
	{"Guy (US)", "en-US-GuyNeural"},
	{"Jenny (US)", "en-US-JennyNeural"},
	{"Michelle (US)", "en-US-MichelleNeural"},
	{"Roger (US)", "en-US-RogerNeural"},
	{"Steffan (US)", "en-US-SteffanNeural"},
	// US multilingual
	{"Ava (US Multi)", "en-US-AvaMultilingualNeural"},
	{"Andrew (US Multi)", "en-US-AndrewMultilingualNeural"},
	{"Emma (US Multi)", "en-US-EmmaMultilingualNeural"},
	{"Brian (US Multi)", "en-US-BrianMultilingualNeural"},
	// UK
	{"Libby (UK)", "en-GB-LibbyNeural"},
	{"Maisie (UK)", "en-GB-MaisieNeural"},
	{"Ryan (UK)", "en-GB-RyanNeural"},
	{"Sonia (UK)", "en-GB-SoniaNeural"},
	{"Thomas (UK)", "en-GB-ThomasNeural"},
	// AU
	{"Natasha (AU)", "en-AU-NatashaNeural"},
	{"William (AU)", "en-AU-WilliamNeural"},
	// CA
	{"Clara (CA)", "en-CA-ClaraNeural"},
	{"Liam (CA)", "en-CA-LiamNeural"},
	// IE
	{"Connor (IE)", "en-IE-ConnorNeural"},
	{"Emily (IE)", "en-IE-EmilyNeural"},
	// IN
	{"Neerja (IN)", "en-IN-NeerjaNeural"},
	{"Neerja Expressive (IN)", "en-IN-NeerjaExpressiveNeural"},
	{"Prabhat (IN)", "en-IN-PrabhatNeural"},
	// ZA
	{"Leah (ZA)", "en-ZA-LeahNeural"},
	{"Luke (ZA)", "en-ZA-LukeNeural"},
	// Other regions
	{"Asilia (KE)", "en-KE-AsiliaNeural"},
	{"Chilemba (KE)", "en-KE-ChilembaNeural"},
	{"Mitchell (NZ)", "en-NZ-MitchellNeural"},
	{"Molly (NZ)", "en-NZ-MollyNeural"},
	{"Abeo (NG)", "en-NG-AbeoNeural"},
	{"Ezinne (NG)", "en-NG-EzinneNeural"},
	{"James (PH)", "en-PH-JamesNeural"},
	{"Rosa (PH)", "en-PH-RosaNeural"},
	{"Luna (SG)", "en-SG-LunaNeural"},
	{"Wayne (SG)", "en-SG-WayneNeural"},
	{"Elimu (TZ)", "en-TZ-ElimuNeural"},
	{"Imani (TZ)", "en-TZ-ImaniNeural"},
}

// CloudCatalog lists the built-in cloud voices.
type CloudCatalog struct{}

// Name returns the lister name
func (CloudCatalog) Name() string {
	return "azure"
}

// ListVoices returns a fresh copy of the built-in catalog
func (CloudCatalog) ListVoices(ctx context.Context) ([]Voice, error) {
	voices := make([]Voice, 0, len(cloudVoices))
	for _, v := range cloudVoices {
		voices = append(voices, Voice{
			Source:      SourceCloud,
			ID:          v[1],
			DisplayName: v[0],
			Language:    languageOf(v[1]),
		})
	}
	return voices, nil
}
