package categorizer

// defaultRules is the built-in pt-BR taxonomy. Order is the priority:
// the first rule whose keyword appears in the description wins, so
// specific entries must come before the generic ones they overlap with
// ("mercado livre" before Supermercado's "mercado", "uber eats" before
// Transporte por Aplicativo's "uber").
var defaultRules = []Rule{
	{"Salário", []string{"salario", "salário", "folha pagto", "pagamento folha", "remuneracao", "remuneração"}},
	{"Freelance", []string{"freelance", "freela", "design gráfico", "design grafico"}},
	{"Dividendos", []string{"dividendo", "jcp", "juros sobre capital"}},
	{"Investimentos", []string{"rendimento", "resgate", "aplicacao", "aplicação", "cdb", "tesouro direto", "poupanca", "poupança", "corretora"}},
	{"Cartão de Crédito", []string{"pagamento fatura", "fatura cartao", "fatura cartão", "pagto cartao", "pagto cartão"}},
	{"Delivery", []string{"ifood", "rappi", "uber eats", "aiqfome"}},
	{"Compras Online", []string{"mercado livre", "mercadolivre", "mercado pago", "mercadopago", "amazon", "shopee", "aliexpress"}},
	{"Supermercado", []string{"supermercado", "mercado", "atacadao", "atacadão", "carrefour", "assai", "assaí", "pao de acucar", "pão de açúcar", "hortifruti"}},
	{"Padaria", []string{"padaria", "panificadora", "confeitaria"}},
	{"Restaurante", []string{"restaurante", "lanchonete", "pizzaria", "hamburgueria", "churrascaria", "sushi"}},
	{"Transporte por Aplicativo", []string{"uber", "99app", "99 pop", "cabify"}},
	{"Combustível", []string{"posto", "combustivel", "combustível", "gasolina", "etanol", "shell", "ipiranga"}},
	{"Estacionamento", []string{"estacionamento", "zona azul", "parking"}},
	{"Pedágio", []string{"pedagio", "pedágio", "sem parar", "veloe", "conectcar"}},
	{"Transporte Público", []string{"metrô", "bilhete unico", "bilhete único", "passagem onibus", "passagem ônibus"}},
	{"Farmácia", []string{"farmacia", "farmácia", "drogaria", "drogasil", "pague menos"}},
	{"Saúde", []string{"hospital", "clinica", "clínica", "laboratorio", "laboratório", "consulta", "plano de saude", "plano de saúde", "unimed", "hapvida"}},
	{"Academia", []string{"academia", "smart fit", "smartfit", "crossfit", "pilates"}},
	{"Educação", []string{"escola", "faculdade", "universidade", "curso", "mensalidade", "udemy", "alura"}},
	{"Livraria e Papelaria", []string{"livraria", "papelaria"}},
	{"Streaming", []string{"netflix", "spotify", "disney", "hbo", "prime video", "deezer", "youtube premium", "globoplay"}},
	{"Jogos", []string{"steam", "playstation", "xbox", "nintendo", "riot games"}},
	{"Lazer", []string{"cinema", "teatro", "show", "ingresso", "parque"}},
	{"Viagem", []string{"hotel", "pousada", "airbnb", "passagem aerea", "passagem aérea", "latam", "gol linhas", "azul linhas", "decolar"}},
	{"Vestuário", []string{"renner", "riachuelo", "c&a", "zara", "shein", "vestuario", "vestuário", "calcados", "calçados"}},
	{"Beleza", []string{"salao de beleza", "salão de beleza", "barbearia", "cosmetico", "cosmético", "boticario", "boticário", "natura"}},
	{"Eletrônicos", []string{"magazine luiza", "magalu", "casas bahia", "kabum", "fast shop", "eletronico", "eletrônico"}},
	{"Pet", []string{"petshop", "pet shop", "veterinari", "petz", "cobasi"}},
	{"Casa e Construção", []string{"leroy merlin", "telhanorte", "material de construcao", "material de construção"}},
	{"Móveis e Decoração", []string{"tok&stok", "mobly", "madeiramadeira", "decoracao", "decoração"}},
	{"Aluguel", []string{"aluguel", "locacao", "locação", "imobiliaria", "imobiliária"}},
	{"Condomínio", []string{"condominio", "condomínio"}},
	{"Energia", []string{"conta de luz", "energia eletrica", "energia elétrica", "enel", "cpfl", "cemig", "coelba"}},
	{"Água", []string{"sabesp", "sanepar", "embasa", "conta de agua", "conta de água", "saneamento"}},
	{"Gás", []string{"comgas", "comgás", "ultragaz", "liquigas", "liquigás"}},
	{"Internet e Telefonia", []string{"internet", "banda larga", "telefonia", "vivo fibra", "claro ", "tim brasil", "oi fibra"}},
	{"Impostos e Taxas", []string{"darf", "iptu", "ipva", "imposto", "tributo"}},
	{"Tarifas Bancárias", []string{"tarifa", "anuidade", "cesta de servicos", "cesta de serviços", "manutencao de conta", "manutenção de conta", "iof"}},
	{"Juros e Encargos", []string{"juros", "encargos", "multa"}},
	{"Seguros", []string{"seguro", "porto seguro", "sulamerica", "sulamérica"}},
	{"Empréstimos", []string{"emprestimo", "empréstimo", "financiamento", "consorcio", "consórcio"}},
	{"Transferências", []string{"pix", "ted", "doc ", "transferencia", "transferência"}},
	{"Saques", []string{"saque", "caixa eletronico", "caixa eletrônico"}},
	{"Doações", []string{"doacao", "doação", "dizimo", "dízimo"}},
	{"Contas", []string{"conta", "boleto", "debito automatico", "débito automático"}},
}
