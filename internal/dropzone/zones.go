package dropzone

import "github.com/lox/skylog/internal/models"

// zones is the directory of French drop zones, keyed by a stable string ID.
var zones = []models.Dropzone{
	{ID: "1", Name: "Centre de Parachutisme de Bourg-en-Bresse", City: "Bourg-en-Bresse", Region: "Auvergne-Rhône-Alpes", Coordinates: models.Coordinates{Lat: 46.2189, Lng: 5.2305}, Phone: "04 74 25 71 84", Website: "parachutisme-bourg.com", Aircraft: []string{"Cessna 182", "Cessna 206"}, MaxAltitude: 4000, Status: models.StatusOpen},
	{ID: "2", Name: "Aéroclub de Tallard", City: "Tallard", Region: "Provence-Alpes-Côte d'Azur", Coordinates: models.Coordinates{Lat: 44.4667, Lng: 6.0333}, Phone: "04 92 54 10 84", Website: "tallard.com", Aircraft: []string{"Pilatus Porter", "Twin Otter"}, MaxAltitude: 4200, Status: models.StatusOpen},
	{ID: "3", Name: "Parachutisme Grenoble", City: "Grenoble", Region: "Auvergne-Rhône-Alpes", Coordinates: models.Coordinates{Lat: 45.1885, Lng: 5.7245}, Phone: "04 76 54 62 85", Website: "parachutisme-grenoble.fr", Aircraft: []string{"Cessna 182", "Caravan"}, MaxAltitude: 4000, Status: models.StatusOpen},
	{ID: "4", Name: "Voltige Aérienne du Forez", City: "Saint-Étienne", Region: "Auvergne-Rhône-Alpes", Coordinates: models.Coordinates{Lat: 45.4397, Lng: 4.3839}, Phone: "04 77 36 85 47", Website: "voltige-forez.com", Aircraft: []string{"Cessna 206"}, MaxAltitude: 3800, Status: models.StatusOpen},
	{ID: "5", Name: "Parachutisme Annecy", City: "Annecy", Region: "Auvergne-Rhône-Alpes", Coordinates: models.Coordinates{Lat: 45.8992, Lng: 6.1294}, Phone: "04 50 45 71 23", Website: "parachutisme-annecy.fr", Aircraft: []string{"Cessna 182", "Islander"}, MaxAltitude: 4200, Status: models.StatusOpen},
	{ID: "6", Name: "Centre de Pau", City: "Pau", Region: "Nouvelle-Aquitaine", Coordinates: models.Coordinates{Lat: 43.38, Lng: -0.42}, Phone: "05 59 33 85 59", Website: "parachutisme-pau.com", Aircraft: []string{"Cessna 182", "PAC 750"}, MaxAltitude: 4000, Status: models.StatusLimited},
	{ID: "7", Name: "Parachutisme Bordeaux", City: "Bordeaux", Region: "Nouvelle-Aquitaine", Coordinates: models.Coordinates{Lat: 44.8378, Lng: -0.5792}, Phone: "05 56 87 45 23", Website: "parachutisme-bordeaux.fr", Aircraft: []string{"Cessna 206", "Caravan"}, MaxAltitude: 4000, Status: models.StatusOpen},
	{ID: "8", Name: "Aéroclub de Limoges", City: "Limoges", Region: "Nouvelle-Aquitaine", Coordinates: models.Coordinates{Lat: 45.8354, Lng: 1.2644}, Phone: "05 55 06 78 32", Website: "aeroclub-limoges.fr", Aircraft: []string{"Cessna 182"}, MaxAltitude: 3500, Status: models.StatusOpen},
	{ID: "9", Name: "Parachutisme La Rochelle", City: "La Rochelle", Region: "Nouvelle-Aquitaine", Coordinates: models.Coordinates{Lat: 46.1603, Lng: -1.1511}, Phone: "05 46 41 85 96", Website: "parachutisme-larochelle.com", Aircraft: []string{"Cessna 182", "Islander"}, MaxAltitude: 4000, Status: models.StatusOpen},
	{ID: "10", Name: "Biscarrosse Parachutisme", City: "Biscarrosse", Region: "Nouvelle-Aquitaine", Coordinates: models.Coordinates{Lat: 44.4283, Lng: -1.2511}, Phone: "05 58 78 45 71", Website: "biscarrosse-parachutisme.fr", Aircraft: []string{"Twin Otter", "Caravan"}, MaxAltitude: 4500, Status: models.StatusOpen},
	{ID: "11", Name: "Parachutisme Cahors", City: "Cahors", Region: "Occitanie", Coordinates: models.Coordinates{Lat: 44.35, Lng: 1.475}, Phone: "05 65 22 97 21", Website: "parachutisme-cahors.com", Aircraft: []string{"Cessna 206", "Islander"}, MaxAltitude: 3500, Status: models.StatusClosed},
	{ID: "12", Name: "Centre de Toulouse", City: "Toulouse", Region: "Occitanie", Coordinates: models.Coordinates{Lat: 43.6047, Lng: 1.4442}, Phone: "05 61 85 47 23", Website: "parachutisme-toulouse.fr", Aircraft: []string{"Cessna 182", "Caravan"}, MaxAltitude: 4200, Status: models.StatusOpen},
	{ID: "13", Name: "Parachutisme Montpellier", City: "Montpellier", Region: "Occitanie", Coordinates: models.Coordinates{Lat: 43.6108, Lng: 3.8767}, Phone: "04 67 78 45 62", Website: "parachutisme-montpellier.fr", Aircraft: []string{"Cessna 206", "Twin Otter"}, MaxAltitude: 4000, Status: models.StatusOpen},
	{ID: "14", Name: "Aéroclub de Perpignan", City: "Perpignan", Region: "Occitanie", Coordinates: models.Coordinates{Lat: 42.6886, Lng: 2.8948}, Phone: "04 68 52 71 84", Website: "aeroclub-perpignan.com", Aircraft: []string{"Cessna 182"}, MaxAltitude: 3800, Status: models.StatusOpen},
	{ID: "15", Name: "Parachutisme Albi", City: "Albi", Region: "Occitanie", Coordinates: models.Coordinates{Lat: 43.9289, Lng: 2.1479}, Phone: "05 63 54 87 41", Website: "parachutisme-albi.fr", Aircraft: []string{"Cessna 206"}, MaxAltitude: 3500, Status: models.StatusLimited},
	{ID: "16", Name: "Saumur Parachutisme", City: "Saumur", Region: "Pays de la Loire", Coordinates: models.Coordinates{Lat: 47.26, Lng: -0.11}, Phone: "02 41 50 80 60", Website: "saumur-parachutisme.com", Aircraft: []string{"Cessna 182", "Caravan"}, MaxAltitude: 4000, Status: models.StatusOpen},
	{ID: "17", Name: "Parachutisme Nantes", City: "Nantes", Region: "Pays de la Loire", Coordinates: models.Coordinates{Lat: 47.2184, Lng: -1.5536}, Phone: "02 40 78 45 23", Website: "parachutisme-nantes.fr", Aircraft: []string{"Cessna 206", "Islander"}, MaxAltitude: 4000, Status: models.StatusOpen},
	{ID: "18", Name: "Le Mans Parachutisme", City: "Le Mans", Region: "Pays de la Loire", Coordinates: models.Coordinates{Lat: 48.0061, Lng: 0.1996}, Phone: "02 43 85 47 96", Website: "lemans-parachutisme.com", Aircraft: []string{"Cessna 182"}, MaxAltitude: 3800, Status: models.StatusOpen},
	{ID: "19", Name: "Cholet Parachutisme", City: "Cholet", Region: "Pays de la Loire", Coordinates: models.Coordinates{Lat: 47.0858, Lng: -0.8789}, Phone: "02 41 62 85 74", Website: "cholet-parachutisme.fr", Aircraft: []string{"Cessna 206"}, MaxAltitude: 3500, Status: models.StatusOpen},
	{ID: "20", Name: "Parachutisme Vannes", City: "Vannes", Region: "Bretagne", Coordinates: models.Coordinates{Lat: 47.6587, Lng: -2.7606}, Phone: "02 97 47 85 62", Website: "parachutisme-vannes.fr", Aircraft: []string{"Cessna 182", "Islander"}, MaxAltitude: 4000, Status: models.StatusOpen},
	{ID: "21", Name: "Aéroclub de Rennes", City: "Rennes", Region: "Bretagne", Coordinates: models.Coordinates{Lat: 48.1173, Lng: -1.6778}, Phone: "02 99 54 78 41", Website: "aeroclub-rennes.com", Aircraft: []string{"Cessna 206"}, MaxAltitude: 3800, Status: models.StatusOpen},
	{ID: "22", Name: "Brest Parachutisme", City: "Brest", Region: "Bretagne", Coordinates: models.Coordinates{Lat: 48.3905, Lng: -4.4861}, Phone: "02 98 47 85 23", Website: "brest-parachutisme.fr", Aircraft: []string{"Cessna 182"}, MaxAltitude: 3500, Status: models.StatusLimited},
	{ID: "23", Name: "Quimper Parachutisme", City: "Quimper", Region: "Bretagne", Coordinates: models.Coordinates{Lat: 47.9978, Lng: -4.0972}, Phone: "02 98 74 85 96", Website: "quimper-parachutisme.com", Aircraft: []string{"Cessna 206"}, MaxAltitude: 3600, Status: models.StatusOpen},
	{ID: "24", Name: "Caen Parachutisme", City: "Caen", Region: "Normandie", Coordinates: models.Coordinates{Lat: 49.1829, Lng: -0.3707}, Phone: "02 31 85 47 23", Website: "caen-parachutisme.fr", Aircraft: []string{"Cessna 182", "Caravan"}, MaxAltitude: 4000, Status: models.StatusOpen},
	{ID: "25", Name: "Rouen Parachutisme", City: "Rouen", Region: "Normandie", Coordinates: models.Coordinates{Lat: 49.4431, Lng: 1.0993}, Phone: "02 35 78 45 62", Website: "rouen-parachutisme.com", Aircraft: []string{"Cessna 206"}, MaxAltitude: 3800, Status: models.StatusOpen},
	{ID: "26", Name: "Cherbourg Parachutisme", City: "Cherbourg", Region: "Normandie", Coordinates: models.Coordinates{Lat: 49.6337, Lng: -1.6815}, Phone: "02 33 52 71 84", Website: "cherbourg-parachutisme.fr", Aircraft: []string{"Cessna 182"}, MaxAltitude: 3500, Status: models.StatusLimited},
	{ID: "27", Name: "Lille Parachutisme", City: "Lille", Region: "Hauts-de-France", Coordinates: models.Coordinates{Lat: 50.6292, Lng: 3.0573}, Phone: "03 20 54 78 41", Website: "lille-parachutisme.fr", Aircraft: []string{"Cessna 182", "Islander"}, MaxAltitude: 4000, Status: models.StatusOpen},
	{ID: "28", Name: "Amiens Parachutisme", City: "Amiens", Region: "Hauts-de-France", Coordinates: models.Coordinates{Lat: 49.8951, Lng: 2.2956}, Phone: "03 22 85 47 96", Website: "amiens-parachutisme.com", Aircraft: []string{"Cessna 206"}, MaxAltitude: 3800, Status: models.StatusOpen},
	{ID: "29", Name: "Calais Parachutisme", City: "Calais", Region: "Hauts-de-France", Coordinates: models.Coordinates{Lat: 50.9581, Lng: 1.9543}, Phone: "03 21 47 85 23", Website: "calais-parachutisme.fr", Aircraft: []string{"Cessna 182"}, MaxAltitude: 3600, Status: models.StatusOpen},
	{ID: "30", Name: "Strasbourg Parachutisme", City: "Strasbourg", Region: "Grand Est", Coordinates: models.Coordinates{Lat: 48.5734, Lng: 7.7521}, Phone: "03 88 54 78 41", Website: "strasbourg-parachutisme.fr", Aircraft: []string{"Cessna 182", "Caravan"}, MaxAltitude: 4200, Status: models.StatusOpen},
	{ID: "31", Name: "Mulhouse Parachutisme", City: "Mulhouse", Region: "Grand Est", Coordinates: models.Coordinates{Lat: 47.7508, Lng: 7.3359}, Phone: "03 89 85 47 62", Website: "mulhouse-parachutisme.com", Aircraft: []string{"Cessna 206"}, MaxAltitude: 4000, Status: models.StatusOpen},
	{ID: "32", Name: "Metz Parachutisme", City: "Metz", Region: "Grand Est", Coordinates: models.Coordinates{Lat: 49.1193, Lng: 6.1757}, Phone: "03 87 78 45 23", Website: "metz-parachutisme.fr", Aircraft: []string{"Cessna 182"}, MaxAltitude: 3800, Status: models.StatusLimited},
	{ID: "33", Name: "Reims Parachutisme", City: "Reims", Region: "Grand Est", Coordinates: models.Coordinates{Lat: 49.2583, Lng: 4.0317}, Phone: "03 26 52 71 84", Website: "reims-parachutisme.com", Aircraft: []string{"Cessna 206", "Islander"}, MaxAltitude: 4000, Status: models.StatusOpen},
	{ID: "34", Name: "Orléans Parachutisme", City: "Orléans", Region: "Centre-Val de Loire", Coordinates: models.Coordinates{Lat: 47.9029, Lng: 1.9093}, Phone: "02 38 85 47 23", Website: "orleans-parachutisme.fr", Aircraft: []string{"Cessna 182", "Caravan"}, MaxAltitude: 4000, Status: models.StatusOpen},
	{ID: "35", Name: "Tours Parachutisme", City: "Tours", Region: "Centre-Val de Loire", Coordinates: models.Coordinates{Lat: 47.3941, Lng: 0.6848}, Phone: "02 47 54 78 41", Website: "tours-parachutisme.com", Aircraft: []string{"Cessna 206"}, MaxAltitude: 3800, Status: models.StatusOpen},
	{ID: "36", Name: "Châteauroux Parachutisme", City: "Châteauroux", Region: "Centre-Val de Loire", Coordinates: models.Coordinates{Lat: 46.8119, Lng: 1.6928}, Phone: "02 54 78 45 96", Website: "chateauroux-parachutisme.fr", Aircraft: []string{"Cessna 182"}, MaxAltitude: 3500, Status: models.StatusOpen},
	{ID: "37", Name: "Parachutisme de Paris", City: "Meaux", Region: "Île-de-France", Coordinates: models.Coordinates{Lat: 48.9553, Lng: 2.8736}, Phone: "01 64 33 85 47", Website: "parachutisme-paris.fr", Aircraft: []string{"Cessna 182", "Twin Otter"}, MaxAltitude: 4000, Status: models.StatusOpen},
	{ID: "38", Name: "Aérodrome de Lognes", City: "Lognes", Region: "Île-de-France", Coordinates: models.Coordinates{Lat: 48.8335, Lng: 2.6319}, Phone: "01 60 05 47 23", Website: "lognes-parachutisme.com", Aircraft: []string{"Cessna 206"}, MaxAltitude: 3800, Status: models.StatusOpen},
	{ID: "39", Name: "Coulommiers Parachutisme", City: "Coulommiers", Region: "Île-de-France", Coordinates: models.Coordinates{Lat: 48.8378, Lng: 3.0833}, Phone: "01 64 65 78 41", Website: "coulommiers-parachutisme.fr", Aircraft: []string{"Cessna 182"}, MaxAltitude: 3600, Status: models.StatusLimited},
	{ID: "40", Name: "Dijon Parachutisme", City: "Dijon", Region: "Bourgogne-Franche-Comté", Coordinates: models.Coordinates{Lat: 47.3220, Lng: 5.0415}, Phone: "03 80 54 78 41", Website: "dijon-parachutisme.fr", Aircraft: []string{"Cessna 182", "Caravan"}, MaxAltitude: 4000, Status: models.StatusOpen},
	{ID: "41", Name: "Besançon Parachutisme", City: "Besançon", Region: "Bourgogne-Franche-Comté", Coordinates: models.Coordinates{Lat: 47.2378, Lng: 6.0241}, Phone: "03 81 85 47 23", Website: "besancon-parachutisme.com", Aircraft: []string{"Cessna 206"}, MaxAltitude: 3800, Status: models.StatusOpen},
	{ID: "42", Name: "Marseille Parachutisme", City: "Marseille", Region: "Provence-Alpes-Côte d'Azur", Coordinates: models.Coordinates{Lat: 43.2965, Lng: 5.3698}, Phone: "04 91 78 45 62", Website: "marseille-parachutisme.fr", Aircraft: []string{"Cessna 182", "Twin Otter"}, MaxAltitude: 4200, Status: models.StatusOpen},
	{ID: "43", Name: "Nice Parachutisme", City: "Nice", Region: "Provence-Alpes-Côte d'Azur", Coordinates: models.Coordinates{Lat: 43.7102, Lng: 7.2620}, Phone: "04 93 52 71 84", Website: "nice-parachutisme.com", Aircraft: []string{"Cessna 206", "Islander"}, MaxAltitude: 4000, Status: models.StatusOpen},
	{ID: "44", Name: "Toulon Parachutisme", City: "Toulon", Region: "Provence-Alpes-Côte d'Azur", Coordinates: models.Coordinates{Lat: 43.1242, Lng: 5.928}, Phone: "04 94 47 85 23", Website: "toulon-parachutisme.fr", Aircraft: []string{"Cessna 182"}, MaxAltitude: 3800, Status: models.StatusLimited},
	{ID: "45", Name: "Avignon Parachutisme", City: "Avignon", Region: "Provence-Alpes-Côte d'Azur", Coordinates: models.Coordinates{Lat: 43.9493, Lng: 4.8059}, Phone: "04 90 74 85 96", Website: "avignon-parachutisme.com", Aircraft: []string{"Cessna 206"}, MaxAltitude: 3600, Status: models.StatusOpen},
	{ID: "46", Name: "Ajaccio Parachutisme", City: "Ajaccio", Region: "Corse", Coordinates: models.Coordinates{Lat: 41.9176, Lng: 8.7367}, Phone: "04 95 25 47 81", Website: "ajaccio-parachutisme.fr", Aircraft: []string{"Cessna 182"}, MaxAltitude: 4000, Status: models.StatusOpen},
	{ID: "47", Name: "Bastia Parachutisme", City: "Bastia", Region: "Corse", Coordinates: models.Coordinates{Lat: 42.7028, Lng: 9.4517}, Phone: "04 95 54 78 62", Website: "bastia-parachutisme.com", Aircraft: []string{"Cessna 206"}, MaxAltitude: 3800, Status: models.StatusOpen},
	{ID: "48", Name: "Martinique Parachutisme", City: "Fort-de-France", Region: "Martinique", Coordinates: models.Coordinates{Lat: 14.6037, Lng: -61.0662}, Phone: "05 96 71 85 47", Website: "martinique-parachutisme.fr", Aircraft: []string{"Cessna 182"}, MaxAltitude: 3500, Status: models.StatusOpen},
	{ID: "49", Name: "Guadeloupe Parachutisme", City: "Pointe-à-Pitre", Region: "Guadeloupe", Coordinates: models.Coordinates{Lat: 16.2650, Lng: -61.5510}, Phone: "05 90 85 47 23", Website: "guadeloupe-parachutisme.fr", Aircraft: []string{"Cessna 206"}, MaxAltitude: 3600, Status: models.StatusOpen},
	{ID: "50", Name: "Réunion Parachutisme", City: "Saint-Denis", Region: "La Réunion", Coordinates: models.Coordinates{Lat: -20.8824, Lng: 55.4504}, Phone: "02 62 54 78 41", Website: "reunion-parachutisme.fr", Aircraft: []string{"Cessna 182"}, MaxAltitude: 4000, Status: models.StatusOpen},
}
